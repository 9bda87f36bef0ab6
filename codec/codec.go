// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"math"
)

// Sample is the set of Go types a native driver buffer can be viewed as.
type Sample interface {
	int16 | int32 | float32 | float64
}

// Codec converts between native samples of type T and normalized float64
// samples. A Codec is immutable and safe for concurrent use.
type Codec[T Sample] struct {
	format Format
	scale  float64 // native units per 1.0
	lo, hi float64 // representable native range
}

// New returns the codec for f. It fails when f is unknown, cannot be mapped
// onto a Go container, or when T is not that container.
func New[T Sample](f Format) (*Codec[T], error) {
	if !f.Known() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if !f.Supported() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if !holds[T](f) {
		return nil, fmt.Errorf("%w: %v as %T", ErrFormatMismatch, f, *new(T))
	}

	c := &Codec[T]{
		format: f,
		scale:  1,
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
	}
	if !f.IsFloat() {
		full := math.Ldexp(1, f.Bits()-1)
		c.scale = full - 1
		c.lo = -full
		c.hi = full - 1
	}

	return c, nil
}

// holds reports whether T is the Go container type for f.
func holds[T Sample](f Format) bool {
	var zero T
	switch any(zero).(type) {
	case int16:
		return !f.IsFloat() && f.Size() == 2
	case int32:
		return !f.IsFloat() && f.Size() == 4
	case float32:
		return f.IsFloat() && f.Size() == 4
	case float64:
		return f.IsFloat() && f.Size() == 8
	}
	return false
}

func (c *Codec[T]) Format() Format { return c.format }

// Scale returns the native magnitude that maps to 1.0.
func (c *Codec[T]) Scale() float64 { return c.scale }

// Decode maps a native sample into the normalized domain.
func (c *Codec[T]) Decode(x T) float64 {
	return float64(x) / c.scale
}

// Encode maps a normalized sample to the native domain. Integer formats
// truncate toward zero and saturate at the container limits.
func (c *Codec[T]) Encode(s float64) T {
	return T(min(max(s*c.scale, c.lo), c.hi))
}

// DecodeBlock decodes min(len(dst), len(src)) samples and returns the count.
func (c *Codec[T]) DecodeBlock(dst []float64, src []T) int {
	n := min(len(dst), len(src))
	dst, src = dst[:n], src[:n]
	for i, x := range src {
		dst[i] = float64(x) / c.scale
	}
	return n
}

// EncodeBlock encodes min(len(dst), len(src)) samples and returns the count.
func (c *Codec[T]) EncodeBlock(dst []T, src []float64) int {
	n := min(len(dst), len(src))
	dst, src = dst[:n], src[:n]
	for i, s := range src {
		dst[i] = T(min(max(s*c.scale, c.lo), c.hi))
	}
	return n
}
