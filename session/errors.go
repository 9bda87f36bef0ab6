// SPDX-License-Identifier: EPL-2.0

package session

import "errors"

var (
	ErrInvalidBufferSize = errors.New("invalid buffer size")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrNoChannels        = errors.New("session needs at least one input and one output channel")
	ErrDuplicateChannel  = errors.New("duplicate channel index")
)
