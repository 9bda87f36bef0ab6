// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	ErrUnknownFormat     = errors.New("unknown sample format")
	ErrUnsupportedFormat = errors.New("unsupported sample format")
	ErrFormatMismatch    = errors.New("sample format does not match native sample type")
)
