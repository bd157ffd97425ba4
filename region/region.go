// SPDX-License-Identifier: EPL-2.0

package region

import "sync"

// DefaultSpan is the span in seconds of a region created from a bare
// cursor position.
const DefaultSpan = 5.0

// minEdgeGap keeps a dragged edge from collapsing onto the opposite one.
const minEdgeGap = 0.01

// Edge names one bound of a region for cursor-driven edits.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

func (e Edge) String() string {
	if e == EdgeStart {
		return "start"
	}
	return "end"
}

// Region is a selected time interval over an asset, in seconds of the
// original timeline. Always Start < End within [0, asset duration].
type Region struct {
	Start float64
	End   float64
}

// Span returns the region length in seconds.
func (r Region) Span() float64 { return r.End - r.Start }

// Contains reports whether pos falls inside [Start, End).
func (r Region) Contains(pos float64) bool {
	return pos >= r.Start && pos < r.End
}

// Model is the single source of truth for the active region over one
// asset. At most one region exists at a time; creating a new one replaces
// the previous one atomically. The model never touches the audio graph,
// its only side effect is notifying subscribers.
type Model struct {
	mtx      sync.Mutex
	duration float64
	active   *Region
	subs     []func(*Region)
}

// NewModel builds a model over an asset of the given duration in seconds.
func NewModel(duration float64) (*Model, error) {
	if duration < 0 {
		return nil, ErrInvalidDuration
	}
	return &Model{duration: duration}, nil
}

// Duration returns the asset duration the model clamps against.
func (m *Model) Duration() float64 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return m.duration
}

// Subscribe registers fn to be called after every region change with the
// new region, or nil when the region was cleared.
func (m *Model) Subscribe(fn func(*Region)) {
	m.mtx.Lock()
	m.subs = append(m.subs, fn)
	m.mtx.Unlock()
}

// Active returns the current region, if any.
func (m *Model) Active() (Region, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.active == nil {
		return Region{}, false
	}
	return *m.active, true
}

// Create replaces any existing region with [start, end], both clamped to
// the asset duration. Fails with ErrInvalidRegion when the clamped bounds
// leave no span; the previous region stays active in that case.
func (m *Model) Create(start, end float64) (Region, error) {
	m.mtx.Lock()

	start = m.clamp(start)
	end = m.clamp(end)

	if end <= start {
		prev := m.active
		m.mtx.Unlock()
		if prev != nil {
			return *prev, ErrInvalidRegion
		}
		return Region{}, ErrInvalidRegion
	}

	r := Region{Start: start, End: end}
	m.active = &r
	m.mtx.Unlock()

	m.notify(&r)
	return r, nil
}

// Update rewrites both bounds of the active region. A result that would
// violate End > Start is rejected as a no-op and the previous region is
// returned unchanged.
func (m *Model) Update(start, end float64) (Region, error) {
	return m.update(&start, &end)
}

// SetStart moves only the start bound, with Update's reject semantics.
func (m *Model) SetStart(start float64) (Region, error) {
	return m.update(&start, nil)
}

// SetEnd moves only the end bound, with Update's reject semantics.
func (m *Model) SetEnd(end float64) (Region, error) {
	return m.update(nil, &end)
}

func (m *Model) update(start, end *float64) (Region, error) {
	m.mtx.Lock()

	if m.active == nil {
		m.mtx.Unlock()
		return Region{}, ErrNoRegion
	}

	next := *m.active
	if start != nil {
		next.Start = m.clamp(*start)
	}
	if end != nil {
		next.End = m.clamp(*end)
	}

	if next.End <= next.Start {
		prev := *m.active
		m.mtx.Unlock()
		return prev, nil // reject: keep last valid state
	}

	m.active = &next
	m.mtx.Unlock()

	m.notify(&next)
	return next, nil
}

// Clear removes the active region. Boundary enforcement then falls back
// to the whole asset.
func (m *Model) Clear() {
	m.mtx.Lock()
	had := m.active != nil
	m.active = nil
	m.mtx.Unlock()

	if had {
		m.notify(nil)
	}
}

// SetFromCursor serves keyboard shortcuts: with no active region it
// creates one of DefaultSpan anchored at the cursor; otherwise it moves
// only the requested edge, clamped so it cannot cross the opposite edge.
func (m *Model) SetFromCursor(cursor float64, edge Edge) (Region, error) {
	m.mtx.Lock()

	if m.active == nil {
		var start, end float64
		if edge == EdgeStart {
			start, end = cursor, cursor+DefaultSpan
		} else {
			start, end = cursor-DefaultSpan, cursor
		}
		m.mtx.Unlock()
		return m.Create(start, end)
	}

	next := *m.active
	if edge == EdgeStart {
		v := m.clamp(cursor)
		if v > next.End-minEdgeGap {
			v = next.End - minEdgeGap
		}
		if v < 0 {
			v = 0
		}
		next.Start = v
	} else {
		v := m.clamp(cursor)
		if v < next.Start+minEdgeGap {
			v = next.Start + minEdgeGap
		}
		next.End = v
	}

	m.active = &next
	m.mtx.Unlock()

	m.notify(&next)
	return next, nil
}

// clamp limits t to [0, duration]. Must be called with the mutex held.
func (m *Model) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > m.duration {
		return m.duration
	}
	return t
}

// notify calls subscribers outside the model lock so a subscriber may
// read back the model without deadlocking.
func (m *Model) notify(r *Region) {
	m.mtx.Lock()
	subs := make([]func(*Region), len(m.subs))
	copy(subs, m.subs)
	m.mtx.Unlock()

	for _, fn := range subs {
		fn(r)
	}
}
