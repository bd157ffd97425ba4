// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"sync"
)

// Buffer is a fully decoded, immutable audio asset: interleaved float32
// samples in [-1, 1] with a fixed sample rate and channel count. A Buffer
// is owned by the session that loaded it and is safe for concurrent reads.
type Buffer struct {
	sampleRate int
	channels   int
	data       []float32 // interleaved, len is a multiple of channels
}

// NewBuffer wraps interleaved sample data in a Buffer. The data slice is
// taken over by the Buffer and must not be mutated afterwards.
func NewBuffer(sampleRate, channels int, data []float32) (*Buffer, error) {
	if sampleRate <= 0 || channels < 1 {
		return nil, ErrInvalidFormat
	}
	if len(data)%channels != 0 {
		return nil, ErrInvalidDstSize
	}

	return &Buffer{
		sampleRate: sampleRate,
		channels:   channels,
		data:       data,
	}, nil
}

// FromSource drains src completely into a Buffer. The source is read to
// io.EOF but not closed; closing stays with the caller that opened it.
func FromSource(src Source) (*Buffer, error) {
	rate := src.SampleRate()
	channels := src.Channels()

	if rate <= 0 || channels < 1 {
		return nil, ErrInvalidFormat
	}

	// Assume ~2 seconds initially and grow as needed.
	data := make([]float32, 0, rate*channels*2)
	buf := make([]float32, 4096)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// Drop a trailing partial frame; decoders that report sample counts
	// rather than frame counts can end mid-frame.
	data = data[:len(data)-len(data)%channels]

	return NewBuffer(rate, channels, data)
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return b.channels }

// Frames returns the number of sample frames per channel.
func (b *Buffer) Frames() int { return len(b.data) / b.channels }

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Sample returns the sample at the given frame and channel.
// Out-of-range access returns 0 rather than panicking; the playback
// stages read past the tail while flushing their final window.
func (b *Buffer) Sample(frame, channel int) float32 {
	if frame < 0 || frame >= b.Frames() || channel < 0 || channel >= b.channels {
		return 0
	}
	return b.data[frame*b.channels+channel]
}

// Interleaved exposes the underlying interleaved sample data. Callers
// must treat the returned slice as read-only.
func (b *Buffer) Interleaved() []float32 { return b.data }

// BufferSource is a seekable Source over a Buffer. Reads and seeks are
// serialized so a control goroutine can reposition the cursor while an
// audio callback is pulling samples.
type BufferSource struct {
	buf *Buffer

	mtx   sync.Mutex
	frame int
}

func NewBufferSource(buf *Buffer) *BufferSource {
	return &BufferSource{buf: buf}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate() }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

// ReadSamples copies whole frames from the cursor into dst.
func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	total := s.buf.Frames()
	if s.frame >= total {
		return 0, io.EOF
	}

	frames := len(dst) / channels
	if remain := total - s.frame; frames > remain {
		frames = remain
	}

	start := s.frame * channels
	copy(dst, s.buf.data[start:start+frames*channels])
	s.frame += frames

	if s.frame >= total {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}

// SeekFrame moves the cursor, clamped to [0, Frames].
func (s *BufferSource) SeekFrame(frame int) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if frame < 0 {
		frame = 0
	}
	if total := s.buf.Frames(); frame > total {
		frame = total
	}
	s.frame = frame
}

// FramePos returns the current cursor position in frames.
func (s *BufferSource) FramePos() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.frame
}
