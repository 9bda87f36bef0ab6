// SPDX-License-Identifier: EPL-2.0

package pingpong

import (
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/ik5/pingpong/asio"
	"github.com/ik5/pingpong/buffer"
	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/dispatch"
	"github.com/ik5/pingpong/mix"
	"github.com/ik5/pingpong/session"
)

// Binding is one channel as the driver created it: a stable index, a name
// and the addresses of its two buffer halves.
type Binding struct {
	Index   int
	Name    string
	Buffers [2]unsafe.Pointer
}

// Topology is what the setup layer negotiated with the driver.
type Topology struct {
	Format     codec.Format
	BufferSize int     // samples per half
	SampleRate float64 // nominal
	Inputs     []Binding
	Outputs    []Binding
	Pan        *mix.Pan // nil means centred at unity volume
}

// engine is a Dispatcher with its native sample type erased.
type engine interface {
	OnBufferSwitch(index int32)
	Underruns() uint64
	Switches() uint64
	Peaks(dst []float64) int
	Teardown()
}

// Host is the object the driver's callbacks are bound to. The driver ABI
// has no user-data pointer, so the setup layer keeps the Host in a variable
// of its own and forwards each callback to it.
type Host struct {
	format     codec.Format
	bufferSize int
	outputs    int
	engine     engine
	router     *mix.Router
	messenger  asio.Messenger

	sampleRate     atomic.Uint64 // float64 bits, last reported by the driver
	samplePosition atomic.Int64
	systemTime     atomic.Int64
}

// Open builds the pipeline for t. Every error it returns is fatal for the
// device: unsupported format or topology, or unusable buffers.
func Open(t Topology) (*Host, error) {
	pan := mix.Center()
	if t.Pan != nil {
		pan = *t.Pan
	}

	router, err := mix.NewRouter(len(t.Inputs), len(t.Outputs), pan)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if !t.Format.Known() {
		return nil, fmt.Errorf("open: %w: %v", codec.ErrUnknownFormat, t.Format)
	}
	if !t.Format.Supported() {
		return nil, fmt.Errorf("open: %w: %v", codec.ErrUnsupportedFormat, t.Format)
	}

	var e engine
	switch {
	case t.Format.IsFloat() && t.Format.Size() == 8:
		e, err = openEngine[float64](t, router)
	case t.Format.IsFloat():
		e, err = openEngine[float32](t, router)
	case t.Format.Size() == 2:
		e, err = openEngine[int16](t, router)
	default:
		e, err = openEngine[int32](t, router)
	}
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	h := &Host{
		format:     t.Format,
		bufferSize: t.BufferSize,
		outputs:    len(t.Outputs),
		engine:     e,
		router:     router,
	}
	h.sampleRate.Store(math.Float64bits(t.SampleRate))

	return h, nil
}

func openEngine[T codec.Sample](t Topology, router *mix.Router) (engine, error) {
	cfg := session.Config[T]{
		Format:     t.Format,
		BufferSize: t.BufferSize,
		SampleRate: t.SampleRate,
	}

	var err error
	if cfg.Inputs, err = specs[T](buffer.Input, t.Inputs, t.BufferSize); err != nil {
		return nil, err
	}
	if cfg.Outputs, err = specs[T](buffer.Output, t.Outputs, t.BufferSize); err != nil {
		return nil, err
	}

	sess, err := session.New(cfg)
	if err != nil {
		return nil, err
	}

	d := dispatch.New[T]()
	if err := d.Install(sess, router); err != nil {
		return nil, err
	}

	return d, nil
}

// specs views the driver-owned halves of each binding as slices of T.
func specs[T codec.Sample](dir buffer.Direction, bindings []Binding, n int) ([]session.ChannelSpec[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", session.ErrInvalidBufferSize, n)
	}

	out := make([]session.ChannelSpec[T], 0, len(bindings))
	for _, b := range bindings {
		if b.Buffers[0] == nil || b.Buffers[1] == nil {
			return nil, fmt.Errorf("%v channel %d (%s): %w", dir, b.Index, b.Name, buffer.ErrNilRegion)
		}
		out = append(out, session.ChannelSpec[T]{
			Index: b.Index,
			Name:  b.Name,
			A:     unsafe.Slice((*T)(b.Buffers[0]), n),
			B:     unsafe.Slice((*T)(b.Buffers[1]), n),
		})
	}

	return out, nil
}

// BufferSwitch is the plain buffer-switch callback.
func (h *Host) BufferSwitch(index int32, _ asio.Bool) {
	h.engine.OnBufferSwitch(index)
}

// BufferSwitchTimeInfo is the buffer-switch callback with timing. The
// timing is recorded when valid but does not affect processing. It returns
// params, as the driver ABI expects.
func (h *Host) BufferSwitchTimeInfo(params *asio.Time, index int32, _ asio.Bool) *asio.Time {
	if params != nil {
		info := &params.TimeInfo
		if info.Flags&asio.SamplePositionValid != 0 {
			h.samplePosition.Store(info.SamplePosition)
		}
		if info.Flags&asio.SystemTimeValid != 0 {
			h.systemTime.Store(info.SystemTime)
		}
		if info.Flags&asio.SampleRateValid != 0 && info.Flags&asio.SampleRateChanged != 0 {
			h.sampleRate.Store(math.Float64bits(info.SampleRate))
		}
	}

	h.engine.OnBufferSwitch(index)

	return params
}

// SampleRateDidChange records a rate change reported by the driver. A rate
// of 0 means the driver lost its clock.
func (h *Host) SampleRateDidChange(rate float64) {
	h.sampleRate.Store(math.Float64bits(rate))
}

// Message answers a driver message; see asio.Messenger.Handle.
func (h *Host) Message(selector asio.MessageSelector, value int32) int32 {
	return h.messenger.Handle(selector, value)
}

// SetPan changes the pan/volume for subsequent buffer periods.
func (h *Host) SetPan(p mix.Pan) error {
	return h.router.SetPan(p)
}

func (h *Host) Pan() mix.Pan { return h.router.Pan() }

func (h *Host) Format() codec.Format { return h.format }

func (h *Host) BufferSize() int { return h.bufferSize }

// Outputs is the number of output channels, the length Peaks fills.
func (h *Host) Outputs() int { return h.outputs }

// Peaks copies each output channel's peak level of the last period.
func (h *Host) Peaks(dst []float64) int { return h.engine.Peaks(dst) }

// Close detaches the pipeline. Callbacks arriving afterwards do nothing.
// Stop the driver before releasing the buffer memory.
func (h *Host) Close() {
	h.engine.Teardown()
}

// Stats is a snapshot of the counters a reporter may poll while the device
// is running.
type Stats struct {
	Switches       uint64
	Underruns      uint64
	SamplePosition int64
	SystemTime     int64
	SampleRate     float64
	Resets         uint64
	Resyncs        uint64
	LatencyChanges uint64
	Overloads      uint64
}

func (h *Host) Stats() Stats {
	return Stats{
		Switches:       h.engine.Switches(),
		Underruns:      h.engine.Underruns(),
		SamplePosition: h.samplePosition.Load(),
		SystemTime:     h.systemTime.Load(),
		SampleRate:     math.Float64frombits(h.sampleRate.Load()),
		Resets:         h.messenger.Resets(),
		Resyncs:        h.messenger.Resyncs(),
		LatencyChanges: h.messenger.LatencyChanges(),
		Overloads:      h.messenger.Overloads(),
	}
}
