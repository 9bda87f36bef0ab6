// SPDX-License-Identifier: EPL-2.0

package dispatch

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/mix"
	"github.com/ik5/pingpong/session"
)

// State of a Dispatcher.
type State int32

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Mixer turns the decoded input streams into output streams. It must not
// allocate or block and returns the number of samples written per output.
type Mixer interface {
	Route(dst, src [][]float64) int
}

// LayoutMixer is a Mixer that can report the channel counts it expects.
// Install checks it against the session.
type LayoutMixer interface {
	Mixer
	Layout() mix.Layout
}

// binding is everything a callback needs, built at Install time so the
// callback itself allocates nothing.
type binding[T codec.Sample] struct {
	sess  *session.Session[T]
	codec *codec.Codec[T]
	mixer Mixer
	in    [][]float64
	out   [][]float64
	peaks []atomic.Uint64 // float64 bits per output channel
}

// Dispatcher runs one buffer period per OnBufferSwitch call: select halves,
// decode inputs, mix, encode outputs.
//
// Calls to OnBufferSwitch must not overlap; the driver guarantees that for
// hardware devices. Install and Teardown must not race with a callback in
// progress either: arm the driver after Install and disarm it before
// Teardown.
type Dispatcher[T codec.Sample] struct {
	bound     atomic.Pointer[binding[T]]
	underruns atomic.Uint64
	switches  atomic.Uint64
}

// New returns an idle dispatcher.
func New[T codec.Sample]() *Dispatcher[T] {
	return &Dispatcher[T]{}
}

// Install binds a session and mixer and makes the dispatcher Active.
func (d *Dispatcher[T]) Install(sess *session.Session[T], mixer Mixer) error {
	if sess == nil || mixer == nil {
		return ErrNilSession
	}
	if lm, ok := mixer.(LayoutMixer); ok {
		want := mix.Layout{Inputs: len(sess.Inputs()), Outputs: len(sess.Outputs())}
		if got := lm.Layout(); got != want {
			return fmt.Errorf("%w: mixer %v, session %v", ErrTopologyMismatch, got, want)
		}
	}

	n := sess.BufferSize()
	b := &binding[T]{
		sess:  sess,
		codec: sess.Codec(),
		mixer: mixer,
		in:    scratch(len(sess.Inputs()), n),
		out:   scratch(len(sess.Outputs()), n),
		peaks: make([]atomic.Uint64, len(sess.Outputs())),
	}

	if !d.bound.CompareAndSwap(nil, b) {
		return ErrAlreadyActive
	}
	return nil
}

func scratch(channels, n int) [][]float64 {
	backing := make([]float64, channels*n)
	bufs := make([][]float64, channels)
	for i := range bufs {
		bufs[i] = backing[i*n : (i+1)*n : (i+1)*n]
	}
	return bufs
}

// Teardown returns the dispatcher to Idle. Later callbacks are ignored.
func (d *Dispatcher[T]) Teardown() {
	d.bound.Store(nil)
}

func (d *Dispatcher[T]) State() State {
	if d.bound.Load() == nil {
		return Idle
	}
	return Active
}

// OnBufferSwitch processes one buffer period for the given switch index.
// It never blocks, allocates or panics on short mixer output: missing samples
// are written as silence and counted as one underrun for the period.
func (d *Dispatcher[T]) OnBufferSwitch(index int32) {
	b := d.bound.Load()
	if b == nil {
		return
	}

	for i, ch := range b.sess.Inputs() {
		ch.Buffer.Select(index)
		b.codec.DecodeBlock(b.in[i], ch.Buffer.Current())
	}

	n := b.mixer.Route(b.out, b.in)
	if n < b.sess.BufferSize() {
		n = max(n, 0)
		for _, out := range b.out {
			clear(out[n:])
		}
		d.underruns.Add(1)
	}

	for i, ch := range b.sess.Outputs() {
		ch.Buffer.Select(index)
		b.codec.EncodeBlock(ch.Buffer.Current(), b.out[i])
		b.peaks[i].Store(math.Float64bits(peak(b.out[i])))
	}

	d.switches.Add(1)
}

func peak(samples []float64) float64 {
	var p float64
	for _, s := range samples {
		p = max(p, math.Abs(s))
	}
	return p
}

// Underruns counts the buffer periods that were padded with silence.
func (d *Dispatcher[T]) Underruns() uint64 { return d.underruns.Load() }

// Switches counts the processed buffer periods.
func (d *Dispatcher[T]) Switches() uint64 { return d.switches.Load() }

// Peaks copies the absolute peak of each output channel's last period, in
// the normalized domain, into dst and returns the number of values copied.
func (d *Dispatcher[T]) Peaks(dst []float64) int {
	b := d.bound.Load()
	if b == nil {
		return 0
	}
	n := min(len(dst), len(b.peaks))
	for i := range n {
		dst[i] = math.Float64frombits(b.peaks[i].Load())
	}
	return n
}
