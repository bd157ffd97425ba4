// SPDX-License-Identifier: EPL-2.0

package player

// Status is the controller's transport state. Transitions go through a
// single setter so late or duplicate events (a finish arriving after a
// manual pause) collapse into no-ops.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusPlaying
	StatusPaused

	// StatusFailed is terminal for the session; the caller must load a
	// new asset to recover.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Backend names the rate-change path the graph was built with.
type Backend int

const (
	// BackendTimeStretch changes tempo with pitch preserved.
	BackendTimeStretch Backend = iota

	// BackendResample changes tempo by resampling; pitch follows. Used
	// when the asset is too short for a stretch analysis window.
	BackendResample
)

func (b Backend) String() string {
	if b == BackendTimeStretch {
		return "timestretch"
	}
	return "resample"
}

// Events carries the controller's observable callbacks. Any field may be
// nil. Callbacks run on controller goroutines and must not block.
type Events struct {
	OnReady           func(durationSeconds float64)
	OnStatusChanged   func(Status)
	OnPositionChanged func(seconds float64)
	OnError           func(error)
}

// InteractionGate lets the boundary monitor suspend a UI drag layer
// around its own seeks so they are not rejected as out-of-bounds user
// drags. The gate is released immediately after the seek.
type InteractionGate interface {
	Suspend()
	Resume()
}

type noGate struct{}

func (noGate) Suspend() {}
func (noGate) Resume()  {}
