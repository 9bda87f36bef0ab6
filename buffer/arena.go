// SPDX-License-Identifier: EPL-2.0

package buffer

import "fmt"

// Arena owns the memory for the double buffers of several channels in a
// single allocation. Pair hands out fixed-size views into it.
type Arena[T any] struct {
	data     []T
	channels int
	n        int
}

// NewArena allocates room for channels double buffers of n samples per half.
func NewArena[T any](channels, n int) (*Arena[T], error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrEmptyRegion, channels)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrEmptyRegion, n)
	}

	return &Arena[T]{
		data:     make([]T, 2*channels*n),
		channels: channels,
		n:        n,
	}, nil
}

// Pair returns the A and B regions of channel i. It panics when i is out of
// range, like an index expression would.
func (a *Arena[T]) Pair(i int) (regionA, regionB []T) {
	if i < 0 || i >= a.channels {
		panic(fmt.Sprintf("buffer: arena channel %d out of range [0,%d)", i, a.channels))
	}
	base := 2 * i * a.n
	return a.data[base : base+a.n : base+a.n], a.data[base+a.n : base+2*a.n : base+2*a.n]
}

// Channels is the number of double buffers in the arena.
func (a *Arena[T]) Channels() int { return a.channels }

// Len is the number of samples per half.
func (a *Arena[T]) Len() int { return a.n }
