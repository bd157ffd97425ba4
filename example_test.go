// SPDX-License-Identifier: EPL-2.0

package audchorus_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audchorus"
	"github.com/ik5/audchorus/formats/wav"
)

// Example_extractClip demonstrates the core flow: decode an asset and
// cut a region out of it as a standalone WAV clip.
func Example_extractClip() {
	// Build a one second 8kHz WAV in memory for demonstration.
	samples := make([]int16, 8000)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	src := new(bytes.Buffer)
	wav.WriteWAV16(src, 8000, samples)

	// Decode it into an immutable buffer.
	buf, err := audchorus.Load(src, "take.wav")
	if err != nil {
		fmt.Printf("load error: %v\n", err)
		return
	}

	// Cut the middle half second.
	artifact, err := audchorus.ExtractClip(buf, 0.25, 0.75)
	if err != nil {
		fmt.Printf("extract error: %v\n", err)
		return
	}

	fmt.Printf("Clip: %d frames at %d Hz\n", artifact.Frames, artifact.SampleRate)
	fmt.Printf("Container: %d bytes of %s\n", len(artifact.Bytes), artifact.MIMEType)
	// Output:
	// Clip: 4000 frames at 8000 Hz
	// Container: 8044 bytes of audio/wav
}

// Example_extractWAV writes a cut region straight to a writer.
func Example_extractWAV() {
	samples := make([]int16, 16000) // 1 second at 16kHz
	src := new(bytes.Buffer)
	wav.WriteWAV16(src, 16000, samples)

	buf, err := audchorus.Load(src, "take.wav")
	if err != nil {
		fmt.Printf("load error: %v\n", err)
		return
	}

	out := new(bytes.Buffer)
	if err := audchorus.ExtractWAV(out, buf, 0, 0.5); err != nil {
		fmt.Printf("extract error: %v\n", err)
		return
	}

	fmt.Printf("Wrote %d bytes\n", out.Len())
	// Output: Wrote 16044 bytes
}

// Example_regionValidation shows that extraction re-validates the
// region against the asset instead of clamping silently.
func Example_regionValidation() {
	samples := make([]int16, 8000)
	src := new(bytes.Buffer)
	wav.WriteWAV16(src, 8000, samples)

	buf, _ := audchorus.Load(src, "take.wav")

	// The asset is one second long; a window past its end is an error,
	// not a shorter clip.
	_, err := audchorus.ExtractClip(buf, 0.5, 2.0)
	fmt.Println(err)
	// Output: region end must be greater than start
}
