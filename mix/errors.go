// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	ErrUnsupportedTopology = errors.New("unsupported channel topology")
	ErrInvalidPan          = errors.New("invalid pan")
)
