// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

var (
	// ErrGraphConstruction indicates the platform refused to build the
	// playback graph. Fatal for the session.
	ErrGraphConstruction = errors.New("audio graph construction failed")

	// ErrSourceConnected guards against tapping a source that already
	// feeds a gain path; the graph can be built once per load.
	ErrSourceConnected = errors.New("source already connected")

	// ErrNotLoaded indicates transport use before a successful Load
	ErrNotLoaded = errors.New("no asset loaded")

	// ErrSessionFailed indicates transport use after the session entered
	// its terminal failed state
	ErrSessionFailed = errors.New("session failed; load a new asset")
)
