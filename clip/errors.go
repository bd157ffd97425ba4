// SPDX-License-Identifier: EPL-2.0

package clip

import "errors"

var (
	// ErrEmptySelection indicates a region that maps to zero samples
	ErrEmptySelection = errors.New("selection contains no samples")

	// ErrDecodeUnavailable indicates extraction before the asset finished decoding
	ErrDecodeUnavailable = errors.New("asset has no decoded buffer")

	// ErrVerificationFailed indicates the encoded artifact did not decode
	// back to the samples that were written
	ErrVerificationFailed = errors.New("artifact verification failed")
)
