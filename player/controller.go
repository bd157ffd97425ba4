// SPDX-License-Identifier: EPL-2.0

package player

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audchorus/audio"
	"github.com/ik5/audchorus/region"
)

const (
	// MinSpeed and MaxSpeed bound the tempo factor.
	MinSpeed = 0.5
	MaxSpeed = 2.0

	// MaxGain bounds amplification; up to 1.0 is sink attenuation, the
	// rest goes through the boost stage.
	MaxGain = 3.0

	defaultPollInterval = 60 * time.Millisecond
)

// Options configure a Controller. The zero value is usable: device sink,
// shared DefaultSlot, 60ms boundary poll.
type Options struct {
	// Sink renders the graph output. Nil selects the device sink.
	Sink Sink

	// Slot serializes graph ownership. Nil selects DefaultSlot.
	Slot *Slot

	// PollInterval is the boundary monitor period. 0 selects 60ms.
	PollInterval time.Duration

	// Interactions is suspended around monitor-initiated seeks.
	Interactions InteractionGate

	Events Events
}

// Controller owns one live playback session over a decoded asset. It
// applies speed and gain without mutating the asset and keeps the play
// position inside the active region.
//
// Only the transport methods, the boundary monitor and the sink's end
// signal write status, and all of them go through setStatusLocked, so
// duplicate or late events degrade to no-ops.
type Controller struct {
	sink   Sink
	slot   *Slot
	gate   InteractionGate
	events Events
	poll   time.Duration

	mtx     sync.Mutex
	status  Status
	buf     *audio.Buffer
	regions *region.Model
	g       *graph
	speed   float64
	gain    float64
	loop    bool

	monitorStop chan struct{}

	// Read by the sink render path without taking mtx; a render callback
	// blocking on the controller lock would deadlock against transport
	// calls that stop the sink while holding it.
	playing  atomic.Bool
	graphRef atomic.Pointer[graph]

	endCh chan struct{}
}

func New(opts Options) *Controller {
	c := &Controller{
		sink:   opts.Sink,
		slot:   opts.Slot,
		gate:   opts.Interactions,
		events: opts.Events,
		poll:   opts.PollInterval,
		status: StatusIdle,
		speed:  1.0,
		gain:   1.0,
		endCh:  make(chan struct{}, 1),
	}

	if c.sink == nil {
		c.sink = NewDeviceSink()
	}
	if c.slot == nil {
		c.slot = DefaultSlot
	}
	if c.gate == nil {
		c.gate = noGate{}
	}
	if c.poll <= 0 {
		c.poll = defaultPollInterval
	}

	return c
}

// Load binds the controller to a decoded asset and builds a fresh graph.
// Whatever graph currently occupies the slot, from this controller or
// any other, is torn down first so exactly one graph is ever alive.
// Speed, gain and loop reset to their defaults.
func (c *Controller) Load(buf *audio.Buffer) error {
	if buf == nil {
		return ErrNotLoaded
	}

	// Displace the current slot occupant. The displaced teardown runs on
	// this goroutine, before any new platform resources are claimed.
	c.slot.Acquire(c, c.teardownForSlot)

	c.mtx.Lock()
	c.teardownLocked() // idempotent if the slot already tore us down
	c.setStatusLocked(StatusLoading)
	c.mtx.Unlock()
	c.emitStatus(StatusLoading)

	g, err := buildGraph(buf)
	if err != nil {
		return c.failLoad(fmt.Errorf("%w: %w", ErrGraphConstruction, err))
	}

	if err := c.sink.Open(buf.SampleRate(), buf.Channels(), c.pull); err != nil {
		return c.failLoad(fmt.Errorf("%w: %w", ErrGraphConstruction, err))
	}

	regions, err := region.NewModel(buf.Duration())
	if err != nil {
		return c.failLoad(fmt.Errorf("%w: %w", ErrGraphConstruction, err))
	}

	c.mtx.Lock()
	c.buf = buf
	c.g = g
	c.graphRef.Store(g)
	c.regions = regions
	c.speed = 1.0
	c.gain = 1.0
	c.loop = false
	c.sink.SetVolume(1.0)
	c.setStatusLocked(StatusReady)
	duration := buf.Duration()
	c.mtx.Unlock()

	c.emitStatus(StatusReady)
	c.emitReady(duration)

	return nil
}

// failLoad records a fatal load failure and reports it.
func (c *Controller) failLoad(err error) error {
	c.mtx.Lock()
	changed := c.setStatusLocked(StatusFailed)
	c.mtx.Unlock()

	if changed {
		c.emitStatus(StatusFailed)
	}
	c.emitError(err)

	return err
}

// Play starts or resumes playback. On a finished clip it restarts from
// the active region's start, or from 0 without one.
func (c *Controller) Play() error {
	c.mtx.Lock()

	if err := c.transportErrLocked(); err != nil {
		c.mtx.Unlock()
		return err
	}
	if c.status == StatusPlaying {
		c.mtx.Unlock()
		return nil
	}

	start, end := c.boundsLocked()
	pos := c.g.stage.PositionSeconds()
	if pos >= end || pos < start {
		c.g.stage.SeekSeconds(start)
	}

	if err := c.sink.Start(); err != nil {
		c.setStatusLocked(StatusFailed)
		c.mtx.Unlock()

		wrapped := fmt.Errorf("%w: %w", ErrGraphConstruction, err)
		c.emitStatus(StatusFailed)
		c.emitError(wrapped)
		return wrapped
	}

	c.playing.Store(true)
	c.setStatusLocked(StatusPlaying)
	c.startMonitorLocked()
	c.mtx.Unlock()

	c.emitStatus(StatusPlaying)
	return nil
}

// Pause halts playback, keeping the position.
func (c *Controller) Pause() error {
	c.mtx.Lock()

	if err := c.transportErrLocked(); err != nil {
		c.mtx.Unlock()
		return err
	}
	if c.status != StatusPlaying {
		c.mtx.Unlock()
		return nil
	}

	c.haltLocked()
	c.setStatusLocked(StatusPaused)
	c.mtx.Unlock()

	c.emitStatus(StatusPaused)
	return nil
}

// Stop pauses and seeks to the active region's start, or to 0 without
// one. Stop is relative to the region so repeated stop/play cycles stay
// inside the practice selection.
func (c *Controller) Stop() error {
	c.mtx.Lock()

	if err := c.transportErrLocked(); err != nil {
		c.mtx.Unlock()
		return err
	}

	wasPlaying := c.status == StatusPlaying
	if wasPlaying {
		c.haltLocked()
		c.setStatusLocked(StatusPaused)
	}

	start, _ := c.boundsLocked()
	c.g.stage.SeekSeconds(start)
	c.mtx.Unlock()

	if wasPlaying {
		c.emitStatus(StatusPaused)
	}
	c.emitPosition(start)
	return nil
}

// Restart seeks to the region start (or 0) and plays.
func (c *Controller) Restart() error {
	c.mtx.Lock()
	if err := c.transportErrLocked(); err != nil {
		c.mtx.Unlock()
		return err
	}
	start, _ := c.boundsLocked()
	c.g.stage.SeekSeconds(start)
	c.mtx.Unlock()

	return c.Play()
}

// Seek moves the play position, clamped to the asset. A position below
// an active region's start is corrected by the next boundary check.
func (c *Controller) Seek(sec float64) error {
	c.mtx.Lock()
	if err := c.transportErrLocked(); err != nil {
		c.mtx.Unlock()
		return err
	}

	if sec < 0 {
		sec = 0
	}
	if d := c.buf.Duration(); sec > d {
		sec = d
	}
	c.g.stage.SeekSeconds(sec)
	c.mtx.Unlock()

	c.emitPosition(sec)
	return nil
}

// SetSpeed changes the tempo factor, clamped to [MinSpeed, MaxSpeed].
// On the time-stretch backend pitch is preserved; the change takes
// effect immediately without interrupting playback.
func (c *Controller) SetSpeed(factor float64) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if err := c.transportErrLocked(); err != nil {
		return err
	}

	if factor < MinSpeed {
		factor = MinSpeed
	}
	if factor > MaxSpeed {
		factor = MaxSpeed
	}

	if err := c.g.stage.SetSpeed(factor); err != nil {
		return err
	}
	c.speed = factor

	return nil
}

// Speed returns the current tempo factor.
func (c *Controller) Speed() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.speed
}

// EffectiveDuration is the asset duration divided by the speed factor,
// for display. Derived, never stored.
func (c *Controller) EffectiveDuration() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.buf == nil {
		return 0
	}
	return c.buf.Duration() / c.speed
}

// SetGain changes output amplification, clamped to [0, MaxGain]. Up to
// unity it is plain sink attenuation. Past unity the sink is pinned at
// full volume and the excess runs through the boost stage, because the
// native volume control cannot exceed 1.0. Dropping back to unity or
// below resets the boost stage so no residual amplification remains.
func (c *Controller) SetGain(factor float64) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if err := c.transportErrLocked(); err != nil {
		return err
	}

	if factor < 0 {
		factor = 0
	}
	if factor > MaxGain {
		factor = MaxGain
	}

	if factor <= 1.0 {
		c.sink.SetVolume(float32(factor))
		c.g.boost.SetFactor(1.0)
	} else {
		c.sink.SetVolume(1.0)
		c.g.boost.SetFactor(float32(factor))
	}
	c.gain = factor

	return nil
}

// Gain returns the current gain factor.
func (c *Controller) Gain() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.gain
}

// SetLoop toggles loop-within-region (or whole-asset loop when no region
// is active).
func (c *Controller) SetLoop(enabled bool) {
	c.mtx.Lock()
	c.loop = enabled
	c.mtx.Unlock()
}

// Loop reports whether looping is enabled.
func (c *Controller) Loop() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.loop
}

// Region exposes the region model bound to the loaded asset, shared with
// the selection UI. Nil before a successful Load.
func (c *Controller) Region() *region.Model {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.regions
}

// ClearRegion removes the active region and immediately re-evaluates
// boundary state so a position past the old region end is not left
// stranded.
func (c *Controller) ClearRegion() error {
	c.mtx.Lock()
	if c.regions == nil {
		c.mtx.Unlock()
		return ErrNotLoaded
	}
	regions := c.regions
	c.mtx.Unlock()

	regions.Clear()
	c.checkBoundaries(false)

	return nil
}

// Position returns the play position in seconds of the original,
// unscaled timeline.
func (c *Controller) Position() float64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.g == nil {
		return 0
	}
	return c.g.stage.PositionSeconds()
}

// Status returns the transport state.
func (c *Controller) Status() Status {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.status
}

// Backend reports which rate-change path the current graph uses.
func (c *Controller) Backend() (Backend, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.g == nil {
		return 0, ErrNotLoaded
	}
	return c.g.backend, nil
}

// Close tears the session down and releases the slot. Safe to call on a
// controller that never loaded.
func (c *Controller) Close() error {
	c.mtx.Lock()
	c.teardownLocked()
	changed := c.setStatusLocked(StatusIdle)
	c.mtx.Unlock()

	c.slot.Release(c)

	if changed {
		c.emitStatus(StatusIdle)
	}
	return nil
}

// pull feeds the sink render path. Must not take c.mtx; transport calls
// stop the sink while holding it.
func (c *Controller) pull(dst []float32) int {
	if !c.playing.Load() {
		return 0
	}

	g := c.graphRef.Load()
	if g == nil {
		return 0
	}

	n, ended := g.read(dst)
	if ended {
		// Natural end of media: funnel into the boundary monitor so
		// looping behaves identically to a boundary caught mid-poll.
		select {
		case c.endCh <- struct{}{}:
		default:
		}
	}

	return n
}

// transportErrLocked maps the current status to the error a transport
// call must return, or nil when transport is allowed.
func (c *Controller) transportErrLocked() error {
	switch c.status {
	case StatusFailed:
		return ErrSessionFailed
	case StatusIdle, StatusLoading:
		return ErrNotLoaded
	}
	if c.g == nil || c.buf == nil {
		return ErrNotLoaded
	}
	return nil
}

// boundsLocked returns the enforced playback window: the active region,
// or the whole asset without one.
func (c *Controller) boundsLocked() (start, end float64) {
	end = c.buf.Duration()
	if c.regions != nil {
		if reg, ok := c.regions.Active(); ok {
			return reg.Start, reg.End
		}
	}
	return 0, end
}

// haltLocked stops rendering and the monitor without touching status.
func (c *Controller) haltLocked() {
	c.playing.Store(false)
	c.stopMonitorLocked()
	_ = c.sink.Stop()
}

// teardownLocked dismantles the live graph. Order matters: monitor
// first, then the sink (so no render callback is in flight), then the
// graph stages, and the asset reference last.
func (c *Controller) teardownLocked() {
	c.stopMonitorLocked()
	c.playing.Store(false)

	if c.g != nil {
		_ = c.sink.Stop()
		_ = c.sink.Close()
		c.g.close()
		c.g = nil
		c.graphRef.Store(nil)
	}

	c.buf = nil
	c.regions = nil
}

// teardownForSlot runs when another Load displaces this controller from
// the graph slot. The displaced session ends up idle, as if unmounted.
func (c *Controller) teardownForSlot() {
	c.mtx.Lock()
	c.teardownLocked()
	changed := c.setStatusLocked(StatusIdle)
	c.mtx.Unlock()

	if changed {
		c.emitStatus(StatusIdle)
	}
}

// setStatusLocked is the single status writer. Returns whether the
// status actually changed; StatusFailed is terminal except for a new
// Load or teardown.
func (c *Controller) setStatusLocked(s Status) bool {
	if c.status == s {
		return false
	}
	if c.status == StatusFailed && s != StatusLoading && s != StatusIdle {
		return false
	}

	c.status = s
	return true
}

func (c *Controller) emitStatus(s Status) {
	if c.events.OnStatusChanged != nil {
		c.events.OnStatusChanged(s)
	}
}

func (c *Controller) emitReady(duration float64) {
	if c.events.OnReady != nil {
		c.events.OnReady(duration)
	}
}

func (c *Controller) emitPosition(pos float64) {
	if c.events.OnPositionChanged != nil {
		c.events.OnPositionChanged(pos)
	}
}

func (c *Controller) emitError(err error) {
	if c.events.OnError != nil {
		c.events.OnError(err)
	}
}
