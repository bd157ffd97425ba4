// SPDX-License-Identifier: EPL-2.0

package player

// Sink is the output end of the playback graph. The device sink renders
// to real hardware; tests drive a manual sink instead.
//
// pull is invoked from the sink's render path to fill dst with
// interleaved float32 samples and returns the number of samples written;
// 0 means the controller has nothing to play and the sink must render
// silence. pull must never block on controller locks held across sink
// calls.
type Sink interface {
	// Open prepares the sink for one stream. A sink is bound to a single
	// stream at a time; Load opens a fresh sink after tearing the old
	// graph down.
	Open(sampleRate, channels int, pull func(dst []float32) int) error

	// Start begins rendering. Stop halts rendering; both are idempotent.
	Start() error
	Stop() error

	// SetVolume applies the sink's native output attenuation. The value
	// is capped at 1.0: amplification past unity is the boost stage's
	// job inside the graph, not the sink's.
	SetVolume(v float32)

	// Close releases the platform resources. A closed sink may be opened
	// again by a later load.
	Close() error
}
