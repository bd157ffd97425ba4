// SPDX-License-Identifier: EPL-2.0

// Package audio provides low-level audio processing primitives.
//
// This package contains the core audio processing building blocks:
//   - Source interface for audio input
//   - Buffer for fully decoded, immutable assets
//   - Resampler for sample rate conversion
//   - TimeStretcher for tempo changes with pitch preserved
//   - Gain for runtime-tunable amplification
//   - MonoMixer for channel mixing
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All audio decoders and processors implement this interface, allowing
// them to be chained together in processing pipelines.
//
// # Resampling
//
// The Resampler changes the sample rate of audio using cubic interpolation:
//
//	resampler := audio.NewResampler(source, 16000)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// Resampling works for both upsampling and downsampling with high quality.
//
// # Decoded Buffers
//
// A Buffer holds a completely decoded asset as immutable interleaved
// samples. FromSource drains any Source into one, and BufferSource turns
// it back into a seekable Source:
//
//	buf, err := audio.FromSource(decoded)
//	cursor := audio.NewBufferSource(buf)
//	cursor.SeekFrame(44100)
//
// Buffers are what selection, extraction and playback operate on: random
// access is cheap and the samples never change under the reader.
//
// # Time Stretching
//
// The TimeStretcher plays a Buffer at a different tempo without shifting
// pitch, using overlap-add synthesis:
//
//	ts, err := audio.NewTimeStretcher(buf)
//	ts.SetSpeed(0.75) // slower, same pitch
//
// Its position is reported in the original timeline, so time-based
// bookkeeping stays valid at any speed. Buffers shorter than one
// analysis window fail with ErrBufferTooShort; fall back to a Resampler
// over a BufferSource in that case.
//
// # Gain
//
// Gain scales amplitude by a factor that can change during playback:
//
//	boost := audio.NewGain(source, 1.0)
//	boost.SetFactor(2.5)
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// Mono audio is often required for voice processing applications.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// This is useful for applications that need to support multiple formats.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// This normalized format makes it easy to process audio without worrying
// about bit depths and ensures no clipping during intermediate processing.
//
// # Performance Considerations
//
// The audio processing functions are optimized for performance:
//   - Minimal allocations (often zero after warmup)
//   - Efficient buffer management
//   - SIMD-friendly algorithms where possible
//
// For best performance:
//   - Reuse buffers when possible
//   - Use appropriate buffer sizes (4096 is a good default)
//   - Process audio in streaming fashion rather than loading all in memory
//
// # Error Handling
//
// Audio processing functions return io.EOF when no more data is available.
// Other errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
package audio
