// SPDX-License-Identifier: EPL-2.0

// Package audchorus selects, extracts and plays back regions of audio
// assets.
//
// An asset is decoded once into an immutable sample buffer. A region is
// a [start, end) second window over that buffer, in the asset's
// original timeline. From there two things happen to a region: it is
// cut out as a standalone WAV clip, or it scopes playback so the
// selection loops for practice.
//
// # Supported Formats
//
// Assets decode from the following containers:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// Extracted clips are always canonical 16-bit PCM WAV, regardless of
// the source container.
//
// # Quick Start
//
// Cutting a clip out of a file takes one call:
//
//	err := audchorus.ExtractFile("take.mp3", "chorus.wav", 41.5, 68.0)
//
// Or with more control over the pieces:
//
//	buf, err := audchorus.LoadFile("take.mp3")
//	artifact, err := audchorus.ExtractClip(buf, 41.5, 68.0)
//	// artifact.Bytes is a complete, independently verified WAV
//
// # Region Selection
//
// The region package keeps the single active selection over an asset,
// clamps edits to the asset bounds and rejects updates that would leave
// an empty selection:
//
//	model, _ := region.NewModel(buf.Duration())
//	r, _ := model.Create(41.5, 68.0)
//
// # Playback
//
// The player package drives a playback graph over a loaded buffer with
// independent speed and gain, looping the active region when asked:
//
//	ctl := player.New(player.Options{})
//	ctl.Load(buf)
//	ctl.Region().Create(41.5, 68.0)
//	ctl.SetLoop(true)
//	ctl.SetSpeed(0.75) // slower, same pitch
//	ctl.Play()
//
// # Processing Pipeline
//
// The audio subpackage holds the underlying Source stages; custom
// pipelines compose the same way the loader and the player build
// theirs:
//
//	resampler := audio.NewResampler(source, 16000)
//	mono := audio.NewMonoMixer(resampler)
//	buf, err := audio.FromSource(mono)
//
// See the individual subpackages for more detailed documentation.
package audchorus
