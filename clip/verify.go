// SPDX-License-Identifier: EPL-2.0

package clip

import (
	"bytes"
	"fmt"

	gowav "github.com/go-audio/wav"
)

// verify re-opens the freshly encoded artifact with go-audio's decoder
// and compares it sample for sample against what was meant to be written.
// Using a decoder we did not write keeps an encoder bug from hiding
// behind a matching decoder bug.
func verify(artifact *Artifact, want []int16) error {
	dec := gowav.NewDecoder(bytes.NewReader(artifact.Bytes))
	if !dec.IsValidFile() {
		return fmt.Errorf("%w: container not decodable", ErrVerificationFailed)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	format := pcm.Format
	if format == nil {
		return fmt.Errorf("%w: missing format", ErrVerificationFailed)
	}
	if format.SampleRate != artifact.SampleRate {
		return fmt.Errorf("%w: sample rate %d, want %d",
			ErrVerificationFailed, format.SampleRate, artifact.SampleRate)
	}
	if format.NumChannels != artifact.Channels {
		return fmt.Errorf("%w: channel count %d, want %d",
			ErrVerificationFailed, format.NumChannels, artifact.Channels)
	}

	if len(pcm.Data) != len(want) {
		return fmt.Errorf("%w: %d samples, want %d",
			ErrVerificationFailed, len(pcm.Data), len(want))
	}

	for i, v := range pcm.Data {
		if int16(v) != want[i] {
			return fmt.Errorf("%w: sample %d is %d, want %d",
				ErrVerificationFailed, i, v, want[i])
		}
	}

	return nil
}
