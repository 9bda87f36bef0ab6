// SPDX-License-Identifier: EPL-2.0

package feed

import "errors"

var (
	ErrUnknownExtension    = errors.New("no decoder registered for extension")
	ErrChannelMismatch     = errors.New("destination channel count does not match the source")
	ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
)
