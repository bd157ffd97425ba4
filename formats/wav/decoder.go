// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audchorus/audio"
)

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	// remaining counts the data chunk bytes not yet consumed.
	remaining int64
	buf       []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return len(s.buf) / 2 }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.remaining <= 0 {
		return 0, io.EOF
	}

	want := len(dst) * 2
	if int64(want) > s.remaining {
		want = int(s.remaining)
	}
	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.r, s.buf[:want])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("reading wav samples: %w", err)
	}
	s.remaining -= int64(n)

	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i : 2*i+2]))
		dst[i] = float32(v) / 32768.0
	}

	if samples == 0 {
		s.remaining = 0
		return 0, io.EOF
	}
	if s.remaining <= 0 || err != nil {
		// A truncated data chunk ends the stream early.
		s.remaining = 0
		return samples, io.EOF
	}
	return samples, nil
}

type Decoder struct{}

// Decode parses the RIFF container, skipping chunks other than fmt and
// data, and returns a source positioned at the first PCM frame. Only
// 16-bit PCM payloads are accepted.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrNotWavFile
		}
		return nil, fmt.Errorf("reading wav header: %w", err)
	}
	if !bytes.Equal(riff[0:4], []byte("RIFF")) || !bytes.Equal(riff[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var (
		haveFmt    bool
		channels   int
		sampleRate int
	)

	for {
		var head [8]byte
		if _, err := io.ReadFull(r, head[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				// Ran out of chunks without finding data.
				return nil, ErrUnsupportedWavChunks
			}
			return nil, fmt.Errorf("reading wav chunk header: %w", err)
		}

		size := binary.LittleEndian.Uint32(head[4:8])

		switch {
		case bytes.Equal(head[0:4], []byte("fmt ")):
			if size < 16 {
				return nil, ErrUnsupportedWavLayout
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, ErrUnsupportedWavLayout
			}

			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample := int(binary.LittleEndian.Uint16(body[14:16]))

			if audioFormat != 1 || bitsPerSample != 16 {
				return nil, ErrOnlyPCM16bitSupported
			}
			haveFmt = true

		case bytes.Equal(head[0:4], []byte("data")):
			if !haveFmt {
				return nil, ErrUnsupportedWavLayout
			}
			return &wavSource{
				r:          r,
				sampleRate: sampleRate,
				channels:   channels,
				remaining:  int64(size),
				buf:        make([]byte, 4096),
			}, nil

		default:
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return nil, ErrUnsupportedWavChunks
			}
		}

		// Chunks are word aligned; an odd-sized body carries a pad byte.
		if size%2 == 1 {
			if _, err := io.CopyN(io.Discard, r, 1); err != nil {
				return nil, ErrUnsupportedWavChunks
			}
		}
	}
}
