// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"sync/atomic"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

const (
	mono   = 1
	stereo = 2
)

// Layout is the input/output channel count pair a Router serves.
type Layout struct {
	Inputs  int
	Outputs int
}

func (l Layout) String() string {
	return fmt.Sprintf("%d->%d", l.Inputs, l.Outputs)
}

// Router combines one or two normalized input streams into one or two
// normalized output streams.
type Router struct {
	layout Layout
	pan    atomic.Pointer[Pan]
}

// NewRouter returns a router for the given channel counts. Only mono and
// stereo are supported on either side.
func NewRouter(inputs, outputs int, pan Pan) (*Router, error) {
	if inputs < mono || inputs > stereo || outputs < mono || outputs > stereo {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrUnsupportedTopology, inputs, outputs)
	}
	if err := pan.Validate(); err != nil {
		return nil, err
	}

	r := &Router{layout: Layout{Inputs: inputs, Outputs: outputs}}
	r.pan.Store(&pan)

	return r, nil
}

func (r *Router) Layout() Layout { return r.layout }

// Pan returns the pan in effect for the next Route call.
func (r *Router) Pan() Pan { return *r.pan.Load() }

// SetPan replaces the pan. It may be called from any goroutine; a Route call
// in progress keeps the value it started with.
func (r *Router) SetPan(p Pan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.pan.Store(&p)
	return nil
}

// Route reads src and writes dst, one slice per channel, and returns the
// number of samples written to each output. That is the shortest of the
// input and output slices; Route never grows a slice and never writes to src.
// A channel-count mismatch with the router's layout produces nothing.
func (r *Router) Route(dst, src [][]float64) int {
	if len(src) != r.layout.Inputs || len(dst) != r.layout.Outputs {
		return 0
	}

	n := len(src[0])
	for _, s := range src[1:] {
		n = min(n, len(s))
	}
	for _, d := range dst {
		n = min(n, len(d))
	}

	pan := r.pan.Load()

	switch r.layout {
	case Layout{Inputs: mono, Outputs: mono}:
		copy(dst[0][:n], src[0][:n])

	case Layout{Inputs: mono, Outputs: stereo}:
		left, right := pan.Gains()
		f64.Scale(dst[0][:n], src[0][:n], left)
		f64.Scale(dst[1][:n], src[0][:n], right)

	case Layout{Inputs: stereo, Outputs: mono}:
		out := dst[0][:n]
		floats.AddTo(out, src[0][:n], src[1][:n])
		f64.Scale(out, out, pan.Volume)

	case Layout{Inputs: stereo, Outputs: stereo}:
		copy(dst[0][:n], src[0][:n])
		copy(dst[1][:n], src[1][:n])
	}

	return n
}
