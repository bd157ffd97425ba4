// SPDX-License-Identifier: EPL-2.0

package player

import "time"

// loopEpsilon widens the end-of-asset check for whole-asset looping so a
// poll landing just short of the final frame still wraps.
const loopEpsilon = 0.05

// startMonitorLocked begins the boundary poll. Started exactly when the
// status becomes playing; idempotent while running.
func (c *Controller) startMonitorLocked() {
	if c.monitorStop != nil {
		return
	}

	stop := make(chan struct{})
	c.monitorStop = stop
	go c.monitorLoop(stop)
}

// stopMonitorLocked halts the poll. Called whenever the status leaves
// playing.
func (c *Controller) stopMonitorLocked() {
	if c.monitorStop != nil {
		close(c.monitorStop)
		c.monitorStop = nil
	}
}

func (c *Controller) monitorLoop(stop chan struct{}) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.checkBoundaries(false)
		case <-c.endCh:
			// End-of-media is handled as a boundary hit, not as a
			// separate terminal state.
			c.checkBoundaries(true)
		}
	}
}

// checkBoundaries enforces the region/loop rules against the current
// position. All math runs in the original, unscaled timeline so the
// rules are invariant under speed changes.
//
// Rules, in order:
//  1. region active and position at/past its end: loop to region start
//     or pause
//  2. region active and position before its start (external seek):
//     snap to region start
//  3. no region, looping, position at the asset end: wrap to 0
func (c *Controller) checkBoundaries(atEnd bool) {
	c.mtx.Lock()

	if c.status != StatusPlaying || c.g == nil {
		c.mtx.Unlock()
		return
	}

	pos := c.g.stage.PositionSeconds()
	duration := c.buf.Duration()

	var (
		reg    span
		hasReg bool
	)
	if c.regions != nil {
		if r, ok := c.regions.Active(); ok {
			reg = span{r.Start, r.End}
			hasReg = true
		}
	}

	paused := false

	switch {
	case hasReg && (atEnd || pos >= reg.end):
		if c.loop {
			c.gatedSeekLocked(reg.start)
			pos = reg.start
		} else {
			c.haltLocked()
			c.setStatusLocked(StatusPaused)
			paused = true
		}

	case hasReg && pos < reg.start:
		c.gatedSeekLocked(reg.start)
		pos = reg.start

	case !hasReg && (atEnd || pos >= duration-loopEpsilon):
		if c.loop {
			c.gatedSeekLocked(0)
			pos = 0
		} else if atEnd || pos >= duration {
			c.haltLocked()
			c.setStatusLocked(StatusPaused)
			paused = true
		}
	}

	c.mtx.Unlock()

	if paused {
		c.emitStatus(StatusPaused)
	}
	c.emitPosition(pos)
}

// gatedSeekLocked performs a monitor-initiated seek with the interaction
// layer suspended, so the seek is not rejected as an out-of-bounds user
// drag. The gate is released immediately after.
func (c *Controller) gatedSeekLocked(sec float64) {
	c.gate.Suspend()
	c.g.stage.SeekSeconds(sec)
	c.gate.Resume()
}

// span is a local start/end pair in original-timeline seconds.
type span struct {
	start, end float64
}
