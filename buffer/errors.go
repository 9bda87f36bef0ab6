// SPDX-License-Identifier: EPL-2.0

package buffer

import "errors"

var (
	ErrNilRegion      = errors.New("buffer region is nil")
	ErrEmptyRegion    = errors.New("buffer region is empty")
	ErrLengthMismatch = errors.New("buffer regions differ in length")
	ErrAliasedRegions = errors.New("buffer regions overlap")
)
