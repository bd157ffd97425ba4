// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/audchorus/formats/wav"
)

// encodeWAV builds an in-memory WAV file for loader tests.
func encodeWAV(t *testing.T, rate, channels int, samples []int16) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := wav.Encode(buf, rate, channels, samples); err != nil {
		t.Fatalf("wav.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestLoad_WavBySniffing(t *testing.T) {
	t.Parallel()

	samples := []int16{100, -100, 200, -200, 300, -300}
	data := encodeWAV(t, 8000, 2, samples)

	// Misleading name: the magic bytes must win.
	buf, err := Load(bytes.NewReader(data), "clip.bin", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if buf.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", buf.SampleRate())
	}
	if buf.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", buf.Channels())
	}
	if buf.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", buf.Frames())
	}
}

func TestLoad_SampleValues(t *testing.T) {
	t.Parallel()

	samples := []int16{16384, -16384, 0, 32767}
	data := encodeWAV(t, 8000, 1, samples)

	buf, err := Load(bytes.NewReader(data), "clip.wav", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []float32{0.5, -0.5, 0, 0.99996948}
	for i, w := range want {
		got := buf.Sample(i, 0)
		if got < w-0.001 || got > w+0.001 {
			t.Errorf("Sample(%d, 0) = %v, want ≈%v", i, got, w)
		}
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Load(bytes.NewReader([]byte("definitely not audio data")), "clip.txt", nil)

	if !errors.Is(err, ErrLoadFailed) {
		t.Errorf("Load() error = %v, want ErrLoadFailed", err)
	}
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load() error = %v, want ErrUnknownFormat in chain", err)
	}
}

func TestLoad_TruncatedInput(t *testing.T) {
	t.Parallel()

	data := encodeWAV(t, 8000, 1, []int16{1, 2, 3})

	// Cut into the header so the decoder fails.
	_, err := Load(bytes.NewReader(data[:20]), "clip.wav", nil)
	if !errors.Is(err, ErrLoadFailed) {
		t.Errorf("Load() error = %v, want ErrLoadFailed", err)
	}
}

func TestLoad_ForceMono(t *testing.T) {
	t.Parallel()

	// Stereo frames with distinct channel values
	samples := []int16{8000, 16000, 8000, 16000}
	data := encodeWAV(t, 8000, 2, samples)

	buf, err := Load(bytes.NewReader(data), "clip.wav", &Options{ForceMono: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if buf.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", buf.Channels())
	}

	// Average of the two channels
	want := float32(8000+16000) / 2 / 32768.0
	got := buf.Sample(0, 0)
	if got < want-0.001 || got > want+0.001 {
		t.Errorf("Sample(0, 0) = %v, want ≈%v", got, want)
	}
}

func TestLoad_TargetRate(t *testing.T) {
	t.Parallel()

	// One second of audio at 44.1kHz
	samples := make([]int16, 44100)
	for i := range samples {
		samples[i] = int16(i % 500)
	}
	data := encodeWAV(t, 44100, 1, samples)

	buf, err := Load(bytes.NewReader(data), "clip.wav", &Options{TargetRate: 8000})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if buf.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", buf.SampleRate())
	}

	// Should land close to one second of output
	if buf.Frames() < 7900 || buf.Frames() > 8100 {
		t.Errorf("Frames() = %d, want ≈8000", buf.Frames())
	}
}
