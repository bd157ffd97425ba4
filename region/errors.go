// SPDX-License-Identifier: EPL-2.0

package region

import "errors"

var (
	// ErrInvalidRegion indicates bounds that leave no span after clamping
	ErrInvalidRegion = errors.New("region end must be greater than start")

	// ErrNoRegion indicates an edit on a model with no active region
	ErrNoRegion = errors.New("no active region")

	// ErrInvalidDuration indicates a negative asset duration
	ErrInvalidDuration = errors.New("asset duration must not be negative")
)
