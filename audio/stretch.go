// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// TimeStretcher plays a Buffer at a variable tempo without shifting pitch.
//
// It synthesizes output by overlap-add: fixed-size grains are read from the
// source at an analysis cursor that advances by hop*speed frames per grain,
// while output always advances by hop frames. Consecutive grains are joined
// with a linear crossfade over the overlap. At speed 1.0 consecutive grains
// line up exactly, so the crossfade blends identical content and the stage
// is transparent.
//
// This is plain overlap-add; a WSOLA similarity search would improve sharp
// transients at extreme factors.
//
// The analysis cursor lives in the original, unscaled timeline, which is
// what playback boundary checks must reason in.
type TimeStretcher struct {
	buf      *Buffer
	channels int
	rate     int

	grain   int // analysis window, frames
	overlap int // crossfade length, frames
	hop     int // synthesis advance per grain, frames

	mtx         sync.Mutex
	speed       float64
	pos         float64 // analysis position in source frames
	tail        []float32
	hasTail     bool
	flushedTail bool
	pending     []float32
	pendingOff  int
	grainBuf    []float32
}

// NewTimeStretcher builds a stretcher over buf with a ~50ms analysis
// window. Fails with ErrBufferTooShort when the buffer cannot fill a
// single window; callers should fall back to a Resampler in that case.
func NewTimeStretcher(buf *Buffer) (*TimeStretcher, error) {
	rate := buf.SampleRate()
	channels := buf.Channels()

	grain := rate / 20
	if grain < 64 {
		grain = 64
	}
	overlap := grain / 4

	if buf.Frames() < grain {
		return nil, ErrBufferTooShort
	}

	return &TimeStretcher{
		buf:      buf,
		channels: channels,
		rate:     rate,
		grain:    grain,
		overlap:  overlap,
		hop:      grain - overlap,
		speed:    1.0,
		tail:     make([]float32, overlap*channels),
		grainBuf: make([]float32, grain*channels),
		pending:  make([]float32, 0, grain*channels),
	}, nil
}

func (t *TimeStretcher) SampleRate() int { return t.rate }
func (t *TimeStretcher) Channels() int   { return t.channels }
func (t *TimeStretcher) BufSize() int    { return t.grain * t.channels }
func (t *TimeStretcher) Close() error    { return nil }

// SetSpeed changes the tempo factor. Takes effect on the next grain, so a
// running read is never interrupted.
func (t *TimeStretcher) SetSpeed(speed float64) error {
	if speed <= 0 {
		return ErrInvalidSpeed
	}

	t.mtx.Lock()
	t.speed = speed
	t.mtx.Unlock()

	return nil
}

// Speed returns the current tempo factor.
func (t *TimeStretcher) Speed() float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.speed
}

// SeekSeconds moves the analysis cursor in original time and discards any
// synthesized output that has not been consumed yet.
func (t *TimeStretcher) SeekSeconds(sec float64) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	pos := sec * float64(t.rate)
	if pos < 0 {
		pos = 0
	}
	if limit := float64(t.buf.Frames()); pos > limit {
		pos = limit
	}

	t.pos = pos
	t.hasTail = false
	t.flushedTail = false
	t.pending = t.pending[:0]
	t.pendingOff = 0
}

// PositionSeconds reports the analysis cursor in original time. The cursor
// leads the emitted audio by at most one grain (~50ms).
func (t *TimeStretcher) PositionSeconds() float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.pos / float64(t.rate)
}

// ReadSamples fills dst with time-stretched samples at the source rate.
func (t *TimeStretcher) ReadSamples(dst []float32) (int, error) {
	if len(dst)%t.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	written := 0
	for written < len(dst) {
		if t.pendingOff < len(t.pending) {
			n := copy(dst[written:], t.pending[t.pendingOff:])
			written += n
			t.pendingOff += n
			continue
		}

		if err := t.synthesizeGrain(); err != nil {
			if written == 0 {
				return 0, err
			}
			return written, err
		}
	}

	return written, nil
}

// synthesizeGrain produces the next hop of output into pending.
// Must be called with the mutex held.
func (t *TimeStretcher) synthesizeGrain() error {
	start := int(t.pos)
	if start >= t.buf.Frames() {
		if t.hasTail && !t.flushedTail {
			// Emit the final crossfade tail so the clip does not end
			// one overlap short.
			t.pending = append(t.pending[:0], t.tail...)
			t.pendingOff = 0
			t.flushedTail = true
			return nil
		}
		return io.EOF
	}

	// Read one grain; Sample zero-pads past the buffer end.
	for f := 0; f < t.grain; f++ {
		for c := 0; c < t.channels; c++ {
			t.grainBuf[f*t.channels+c] = t.buf.Sample(start+f, c)
		}
	}

	if t.hasTail {
		for f := 0; f < t.overlap; f++ {
			a := float32(f) / float32(t.overlap)
			for c := 0; c < t.channels; c++ {
				i := f*t.channels + c
				t.grainBuf[i] = t.tail[i]*(1-a) + t.grainBuf[i]*a
			}
		}
	}

	t.pending = append(t.pending[:0], t.grainBuf[:t.hop*t.channels]...)
	t.pendingOff = 0

	copy(t.tail, t.grainBuf[t.hop*t.channels:])
	t.hasTail = true
	t.flushedTail = false

	t.pos += float64(t.hop) * t.speed

	return nil
}
