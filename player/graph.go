// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"sync"

	"github.com/ik5/audchorus/audio"
)

// Slot serializes ownership of the process-wide audio graph. The
// underlying platform output is exclusive, and double-mount scenarios
// (fast navigation between sessions) would otherwise leak graphs and
// play over each other. At most one controller graph is alive per slot.
//
// The slot is injectable so tests can run controllers in isolation;
// production wiring shares DefaultSlot.
type Slot struct {
	mtx      sync.Mutex
	owner    any
	teardown func()
}

// DefaultSlot is the process-wide graph slot.
var DefaultSlot = NewSlot()

func NewSlot() *Slot {
	return &Slot{}
}

// Acquire makes owner the slot's occupant, first tearing down the
// previous occupant. The previous teardown runs on the caller's
// goroutine, never from an audio callback, so a live render callback is
// not destroyed out from under itself.
func (s *Slot) Acquire(owner any, teardown func()) {
	s.mtx.Lock()
	prev := s.teardown
	s.owner = owner
	s.teardown = teardown
	s.mtx.Unlock()

	if prev != nil {
		prev()
	}
}

// Release clears the slot if owner still occupies it. A controller that
// was already displaced by a newer Acquire must not tear down the newer
// occupant's graph.
func (s *Slot) Release(owner any) {
	s.mtx.Lock()
	if s.owner == owner {
		s.owner = nil
		s.teardown = nil
	}
	s.mtx.Unlock()
}

// rateStage is the speed-changing stage of the graph. TimeStretcher
// satisfies it directly; resampleStage adapts the cubic Resampler for
// assets too short to stretch.
type rateStage interface {
	audio.Source
	SetSpeed(speed float64) error
	SeekSeconds(sec float64)
	PositionSeconds() float64
}

// graph is one built playback chain: source cursor → rate stage → boost.
type graph struct {
	backend Backend
	stage   rateStage
	boost   *audio.Gain

	connected bool
}

// buildGraph constructs the chain for buf. The stretch backend is probed
// first; a buffer shorter than one analysis window falls back to the
// resample backend.
func buildGraph(buf *audio.Buffer) (*graph, error) {
	g := &graph{}

	stretch, err := audio.NewTimeStretcher(buf)
	switch {
	case err == nil:
		g.backend = BackendTimeStretch
		g.stage = stretch
	case errors.Is(err, audio.ErrBufferTooShort):
		g.backend = BackendResample
		g.stage = newResampleStage(buf)
	default:
		return nil, err
	}

	if err := g.connectBoost(); err != nil {
		return nil, err
	}

	return g, nil
}

// connectBoost taps the rate stage into the boost gain node. A source can
// be tapped exactly once; a second connect is a caller bug and is
// reported, not retried.
func (g *graph) connectBoost() error {
	if g.connected {
		return ErrSourceConnected
	}

	g.boost = audio.NewGain(g.stage, 1.0)
	g.connected = true

	return nil
}

// read pulls post-boost samples. Returns samples written and whether the
// stream reached its natural end.
func (g *graph) read(dst []float32) (int, bool) {
	n, err := g.boost.ReadSamples(dst)
	return n, err != nil
}

// close releases the stages. Disconnect happens before the stages are
// dropped so no render path can reach a freed node.
func (g *graph) close() {
	g.connected = false
	if g.boost != nil {
		_ = g.boost.Close()
	}
}

// resampleStage adapts audio.Resampler as a rate stage. Changing speed or
// seeking rebuilds the resampler; its interpolation window is tiny, so
// rebuild cost is negligible. Pitch follows the rate change on this
// backend.
type resampleStage struct {
	mtx sync.Mutex

	buf   *audio.Buffer
	src   *audio.BufferSource
	res   *audio.Resampler
	speed float64
}

func newResampleStage(buf *audio.Buffer) *resampleStage {
	s := &resampleStage{
		buf:   buf,
		src:   audio.NewBufferSource(buf),
		speed: 1.0,
	}
	s.rebuild()

	return s
}

// rebuild recreates the resampler for the current speed. Must be called
// with the mutex held (or before the stage is shared).
func (s *resampleStage) rebuild() {
	rate := s.buf.SampleRate()
	dst := int(float64(rate) / s.speed)
	if dst < 1 {
		dst = 1
	}
	s.res = audio.NewResampler(s.src, dst)
}

func (s *resampleStage) SampleRate() int { return s.buf.SampleRate() }
func (s *resampleStage) Channels() int   { return s.buf.Channels() }
func (s *resampleStage) BufSize() int    { return 4096 }
func (s *resampleStage) Close() error    { return nil }

func (s *resampleStage) ReadSamples(dst []float32) (int, error) {
	s.mtx.Lock()
	res := s.res
	s.mtx.Unlock()

	return res.ReadSamples(dst)
}

func (s *resampleStage) SetSpeed(speed float64) error {
	if speed <= 0 {
		return audio.ErrInvalidSpeed
	}

	s.mtx.Lock()
	s.speed = speed
	s.rebuild()
	s.mtx.Unlock()

	return nil
}

func (s *resampleStage) SeekSeconds(sec float64) {
	s.mtx.Lock()
	s.src.SeekFrame(int(sec * float64(s.buf.SampleRate())))
	s.rebuild()
	s.mtx.Unlock()
}

func (s *resampleStage) PositionSeconds() float64 {
	return float64(s.src.FramePos()) / float64(s.buf.SampleRate())
}
