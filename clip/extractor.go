// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ik5/audchorus/audio"
	"github.com/ik5/audchorus/formats/wav"
	"github.com/ik5/audchorus/region"
	"github.com/ik5/audchorus/utils"
)

// Artifact is a self-contained encoded clip produced from a region.
// Immutable once produced; ownership moves to the caller, which hands it
// to the upload collaborator.
type Artifact struct {
	Bytes      []byte
	MIMEType   string
	SampleRate int
	Channels   int
	Frames     int // sample frames per channel
}

// Extract copies the samples of r out of buf into a standalone PCM WAV
// artifact.
//
// The copy is deliberately verbatim: no resampling, no normalization, no
// gain. Any processing here would compound with lossy re-encoding
// downstream. Floats are quantized to 16-bit by clamp, scale by 32767 and
// round; no dither.
//
// The region is re-validated against buf rather than trusted: a region
// selected against an earlier asset and carried across a reload fails
// with region.ErrInvalidRegion instead of silently clamping.
//
// The produced container is re-decoded with an independent decoder before
// returning; a mismatch surfaces as ErrVerificationFailed, never as a
// silently corrupt artifact.
func Extract(buf *audio.Buffer, r region.Region) (*Artifact, error) {
	if buf == nil {
		return nil, ErrDecodeUnavailable
	}

	duration := buf.Duration()
	if r.Start < 0 || r.End > duration || r.End <= r.Start {
		return nil, region.ErrInvalidRegion
	}

	rate := buf.SampleRate()
	channels := buf.Channels()

	startSample := int(math.Floor(r.Start * float64(rate)))
	endSample := int(math.Floor(r.End * float64(rate)))
	if endSample > buf.Frames() {
		// Floating point slack at r.End == duration
		endSample = buf.Frames()
	}

	length := endSample - startSample
	if length <= 0 {
		return nil, ErrEmptySelection
	}

	pcm := make([]int16, length*channels)
	for f := 0; f < length; f++ {
		for c := 0; c < channels; c++ {
			pcm[f*channels+c] = utils.Float32ToInt16(buf.Sample(startSample+f, c))
		}
	}

	out := new(bytes.Buffer)
	out.Grow(44 + len(pcm)*2)
	if err := wav.Encode(out, rate, channels, pcm); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	artifact := &Artifact{
		Bytes:      out.Bytes(),
		MIMEType:   "audio/wav",
		SampleRate: rate,
		Channels:   channels,
		Frames:     length,
	}

	if err := verify(artifact, pcm); err != nil {
		return nil, err
	}

	return artifact, nil
}
