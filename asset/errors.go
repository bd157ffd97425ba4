// SPDX-License-Identifier: EPL-2.0

package asset

import "errors"

var (
	// ErrLoadFailed wraps every decode or read failure during loading.
	// Recoverable: the caller may load a different asset.
	ErrLoadFailed = errors.New("asset load failed")

	// ErrUnknownFormat indicates content that matches no registered decoder
	ErrUnknownFormat = errors.New("unknown audio format")
)
