// SPDX-License-Identifier: EPL-2.0

// Package asset decodes audio files into fully materialized sample
// buffers.
//
// An asset is an audio.Buffer: immutable interleaved float32 samples with
// a fixed rate and channel count. Decoding happens once, at load; the
// clip extractor and the player both work on the same decoded buffer and
// never re-read the source.
//
// The loader detects the container from magic bytes (RIFF/WAVE, OggS,
// FORM/AIFF, ID3 or a bare MPEG sync) and falls back to the file
// extension. Decode failures of any kind wrap ErrLoadFailed so callers
// can treat them uniformly as "try another file".
package asset
