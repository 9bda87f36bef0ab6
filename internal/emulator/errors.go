// SPDX-License-Identifier: EPL-2.0

package emulator

import "errors"

var (
	ErrClosed          = errors.New("emulated device is closed")
	ErrInvalidChannels = errors.New("emulated device needs one or two channels per direction")
	ErrInvalidRate     = errors.New("sample rate must be positive")
)
