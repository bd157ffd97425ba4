// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audchorus/audio"
	"github.com/ik5/audchorus/formats/aiff"
	"github.com/ik5/audchorus/formats/mp3"
	"github.com/ik5/audchorus/formats/vorbis"
	"github.com/ik5/audchorus/formats/wav"
)

// Options tune how an asset is materialized. The zero value keeps the
// source format untouched. These stages run at load time only; extraction
// always operates on the buffer exactly as loaded.
type Options struct {
	// ForceMono downmixes multi-channel input by averaging.
	ForceMono bool

	// TargetRate resamples to the given rate. 0 keeps the source rate.
	TargetRate int
}

// defaultRegistry holds the built-in format decoders.
func defaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

// Load decodes an arbitrary audio input completely into an audio.Buffer.
// The format is detected from the content's magic bytes first and falls
// back to the extension of name. Any failure wraps ErrLoadFailed.
func Load(r io.Reader, name string, opts *Options) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	format := sniff(data)
	if format == "" {
		format = formatForName(name)
	}
	if format == "" {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, ErrUnknownFormat)
	}

	dec, ok := defaultRegistry().Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, ErrUnknownFormat)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer src.Close()

	// Optional load-time shaping. Order matters: resample first so the
	// mono average runs at the final rate.
	var pipe audio.Source = src
	if opts != nil && opts.TargetRate > 0 && opts.TargetRate != src.SampleRate() {
		pipe = audio.NewResampler(pipe, opts.TargetRate)
	}
	if opts != nil && opts.ForceMono && src.Channels() > 1 {
		pipe = audio.NewMonoMixer(pipe)
	}

	buf, err := audio.FromSource(pipe)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	return buf, nil
}

// LoadFile opens and decodes path. See Load.
func LoadFile(path string, opts *Options) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer f.Close()

	return Load(f, filepath.Base(path), opts)
}

// sniff recognizes a format from leading magic bytes. Returns "" when the
// content is not recognizably one of the supported containers.
func sniff(data []byte) string {
	if len(data) < 12 {
		return ""
	}

	switch {
	case bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return "wav"
	case bytes.HasPrefix(data, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(data, []byte("FORM")) && bytes.Equal(data[8:12], []byte("AIFF")):
		return "aiff"
	case bytes.HasPrefix(data, []byte("ID3")):
		return "mp3"
	case data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync, no ID3 tag
		return "mp3"
	}

	return ""
}

// formatForName maps a file extension to a registry key.
func formatForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".wav", ".wave":
		return "wav"
	case ".mp3":
		return "mp3"
	case ".ogg", ".oga":
		return "ogg"
	case ".aiff", ".aif":
		return "aiff"
	}

	return ""
}
