// SPDX-License-Identifier: EPL-2.0

package buffer

import (
	"fmt"
	"unsafe"
)

// Direction tells whether the host reads (Input) or writes (Output) a buffer.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Half names one of the two regions of a double buffer.
type Half int

const (
	HalfA Half = iota
	HalfB
)

func (h Half) String() string {
	if h == HalfB {
		return "B"
	}
	return "A"
}

// HalfFor returns the half the host owns for the given buffer-switch index.
// An input reads the half the driver just finished filling, which is the
// opposite of the half the driver is about to fill; an output writes the
// half the index names. Any non-zero index counts as 1.
func HalfFor(dir Direction, index int32) Half {
	second := index != 0
	if dir == Input {
		second = !second
	}
	if second {
		return HalfB
	}
	return HalfA
}

// DoubleBuffer is one channel's ping-pong storage. The two regions are
// borrowed from whoever set the session up and are never reallocated; the
// slices returned by Current must not be kept past the callback that
// obtained them.
type DoubleBuffer[T any] struct {
	halves  [2][]T
	dir     Direction
	current Half
}

// New binds a double buffer to regions a and b, which must be non-empty,
// equally long and disjoint.
func New[T any](dir Direction, a, b []T) (*DoubleBuffer[T], error) {
	if a == nil || b == nil {
		return nil, ErrNilRegion
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyRegion
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}
	if overlaps(a, b) {
		return nil, ErrAliasedRegions
	}

	return &DoubleBuffer[T]{
		halves: [2][]T{a[:len(a):len(a)], b[:len(b):len(b)]},
		dir:    dir,
	}, nil
}

// FromPointers views two foreign regions of n samples each, typically the
// addresses a driver handed out when it created its buffers.
func FromPointers[T any](dir Direction, a, b unsafe.Pointer, n int) (*DoubleBuffer[T], error) {
	if a == nil || b == nil {
		return nil, ErrNilRegion
	}
	if n <= 0 {
		return nil, ErrEmptyRegion
	}
	return New(dir, unsafe.Slice((*T)(a), n), unsafe.Slice((*T)(b), n))
}

func overlaps[T any](a, b []T) bool {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return false
	}

	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*size
	bEnd := bStart + uintptr(len(b))*size

	return aStart < bEnd && bStart < aEnd
}

// Select makes the half that index designates for this buffer's direction
// current and returns it. The index is trusted; alternation is not checked.
func (d *DoubleBuffer[T]) Select(index int32) Half {
	d.current = HalfFor(d.dir, index)
	return d.current
}

// Current returns the region chosen by the last Select.
func (d *DoubleBuffer[T]) Current() []T {
	return d.halves[d.current]
}

// Region returns the region for h regardless of selection.
func (d *DoubleBuffer[T]) Region(h Half) []T {
	return d.halves[h&1]
}

// Len is the number of samples per half.
func (d *DoubleBuffer[T]) Len() int { return len(d.halves[0]) }

func (d *DoubleBuffer[T]) Direction() Direction { return d.dir }
