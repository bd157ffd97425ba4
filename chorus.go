// SPDX-License-Identifier: EPL-2.0

package audchorus

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/audchorus/asset"
	"github.com/ik5/audchorus/audio"
	"github.com/ik5/audchorus/clip"
	"github.com/ik5/audchorus/region"
)

// Load decodes an audio stream completely into an immutable sample
// buffer. The format is detected from the content, with name's extension
// as a fallback. The buffer is the unit everything else operates on:
// regions select a slice of it, extraction copies from it, playback
// renders it.
func Load(r io.Reader, name string) (*audio.Buffer, error) {
	return asset.Load(r, name, nil)
}

// LoadFile decodes the audio file at path. See Load.
func LoadFile(path string) (*audio.Buffer, error) {
	return asset.LoadFile(path, nil)
}

// ExtractClip copies the [start, end) second window of buf into a
// standalone, verified 16-bit PCM WAV artifact. The copy is sample
// accurate and untouched: no resampling, no gain, no fades.
func ExtractClip(buf *audio.Buffer, start, end float64) (*clip.Artifact, error) {
	return clip.Extract(buf, region.Region{Start: start, End: end})
}

// ExtractWAV writes the [start, end) second window of buf to w as a
// 16-bit PCM WAV. See ExtractClip.
func ExtractWAV(w io.Writer, buf *audio.Buffer, start, end float64) error {
	artifact, err := ExtractClip(buf, start, end)
	if err != nil {
		return err
	}

	if _, err := w.Write(artifact.Bytes); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ExtractFile decodes srcPath, cuts the [start, end) second window and
// writes it to dstPath as a 16-bit PCM WAV.
func ExtractFile(srcPath, dstPath string, start, end float64) error {
	buf, err := LoadFile(srcPath)
	if err != nil {
		return err
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := ExtractWAV(out, buf, start, end); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
