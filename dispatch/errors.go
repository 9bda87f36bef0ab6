// SPDX-License-Identifier: EPL-2.0

package dispatch

import "errors"

var (
	ErrNilSession       = errors.New("dispatcher needs a session and a mixer")
	ErrAlreadyActive    = errors.New("dispatcher already has a session installed")
	ErrTopologyMismatch = errors.New("mixer layout does not match session topology")
)
