// SPDX-License-Identifier: EPL-2.0

package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
	"unsafe"

	"github.com/ik5/pingpong"
	"github.com/ik5/pingpong/asio"
	"github.com/ik5/pingpong/buffer"
	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/feed"
	"github.com/ik5/pingpong/mix"
)

// Config describes the device to emulate.
type Config struct {
	Format     codec.Format
	BufferSize int // samples per half
	SampleRate int
	Inputs     int
	Outputs    int
	Pan        *mix.Pan // nil is centred at unity volume
	// Realtime paces periods against the wall clock. Leave it off when
	// the sink already blocks at the device rate.
	Realtime bool
	Logger   *log.Logger
}

// Sink receives each period of output, planar and normalized.
type Sink interface {
	WriteFrames(frames [][]float64) error
	Close() error
}

// Report summarizes a Run.
type Report struct {
	Periods int
	Frames  int // source frames consumed
}

// Device is an emulated driver with its sample type erased.
type Device interface {
	Host() *pingpong.Host
	Run(ctx context.Context, src feed.Source, sink Sink) (Report, error)
	Close()
}

// Open picks the container type for cfg.Format and calls New.
func Open(cfg Config) (Device, error) {
	if !cfg.Format.Known() {
		return nil, fmt.Errorf("%w: %v", codec.ErrUnknownFormat, cfg.Format)
	}

	switch {
	case cfg.Format.IsFloat() && cfg.Format.Size() == 8:
		return device[float64](New[float64](cfg))
	case cfg.Format.IsFloat():
		return device[float32](New[float32](cfg))
	case cfg.Format.Size() == 2:
		return device[int16](New[int16](cfg))
	default:
		return device[int32](New[int32](cfg))
	}
}

// device keeps a failed New from turning into a non-nil Device.
func device[T codec.Sample](e *Emulator[T], err error) (Device, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Emulator plays the driver's part for a Host: it owns the buffer halves,
// fills the inputs from a feed, fires the buffer switch with alternating
// indices and drains the outputs into a sink.
type Emulator[T codec.Sample] struct {
	cfg    Config
	log    *log.Logger
	codec  *codec.Codec[T]
	in     *buffer.Arena[T]
	out    *buffer.Arena[T]
	host   *pingpong.Host
	period time.Duration

	// mtx serializes callbacks with Close; a software clock gives no
	// guarantee that two switches never overlap.
	mtx      sync.Mutex
	closed   bool
	timeInfo bool
	time     asio.Time
	start    time.Time
}

// New allocates the device buffers and opens a Host on them.
func New[T codec.Sample](cfg Config) (*Emulator[T], error) {
	if cfg.Inputs < 1 || cfg.Inputs > 2 || cfg.Outputs < 1 || cfg.Outputs > 2 {
		return nil, fmt.Errorf("%w: %d in, %d out", ErrInvalidChannels, cfg.Inputs, cfg.Outputs)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, cfg.SampleRate)
	}

	c, err := codec.New[T](cfg.Format)
	if err != nil {
		return nil, err
	}

	in, err := buffer.NewArena[T](cfg.Inputs, cfg.BufferSize)
	if err != nil {
		return nil, err
	}
	out, err := buffer.NewArena[T](cfg.Outputs, cfg.BufferSize)
	if err != nil {
		return nil, err
	}

	host, err := pingpong.Open(pingpong.Topology{
		Format:     cfg.Format,
		BufferSize: cfg.BufferSize,
		SampleRate: float64(cfg.SampleRate),
		Inputs:     bindings(in, "Input"),
		Outputs:    bindings(out, "Output"),
		Pan:        cfg.Pan,
	})
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	e := &Emulator[T]{
		cfg:    cfg,
		log:    logger,
		codec:  c,
		in:     in,
		out:    out,
		host:   host,
		period: time.Duration(cfg.BufferSize) * time.Second / time.Duration(cfg.SampleRate),
	}

	// the handshake a driver performs before starting
	e.timeInfo = host.Message(asio.SelectorSupported, int32(asio.SupportsTimeInfo)) == 1 &&
		host.Message(asio.SupportsTimeInfo, 0) == 1
	logger.Printf("emulator: %v, %d samples/half (%v), %d Hz, %d in, %d out, engine version %d, time info %t",
		cfg.Format, cfg.BufferSize, e.period, cfg.SampleRate, cfg.Inputs, cfg.Outputs,
		host.Message(asio.EngineVersion, 0), e.timeInfo)

	return e, nil
}

func bindings[T codec.Sample](a *buffer.Arena[T], prefix string) []pingpong.Binding {
	out := make([]pingpong.Binding, a.Channels())
	for i := range out {
		regionA, regionB := a.Pair(i)
		out[i] = pingpong.Binding{
			Index:   i,
			Name:    fmt.Sprintf("%s %d", prefix, i+1),
			Buffers: [2]unsafe.Pointer{unsafe.Pointer(&regionA[0]), unsafe.Pointer(&regionB[0])},
		}
	}
	return out
}

func (e *Emulator[T]) Host() *pingpong.Host { return e.host }

// Period is the duration of one buffer half at the nominal rate.
func (e *Emulator[T]) Period() time.Duration { return e.period }

// Run streams src through the host until the source ends, ctx is done or
// the sink fails. A short last period is padded with silence. The sink is
// not closed.
func (e *Emulator[T]) Run(ctx context.Context, src feed.Source, sink Sink) (Report, error) {
	var rep Report
	if src.Channels() < 1 {
		return rep, fmt.Errorf("%w: source has no channels", ErrInvalidChannels)
	}
	if src.SampleRate() != e.cfg.SampleRate {
		e.log.Printf("emulator: source rate %d Hz played at %d Hz", src.SampleRate(), e.cfg.SampleRate)
	}

	n := e.cfg.BufferSize
	raw := planar(src.Channels(), n)
	inFrames := planar(e.cfg.Inputs, n)
	outFrames := planar(e.cfg.Outputs, n)

	var tick <-chan time.Time
	if e.cfg.Realtime {
		t := time.NewTicker(e.period)
		defer t.Stop()
		tick = t.C
	}

	e.start = time.Now()
	var index int32
	for {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		got, eof, err := readPeriod(src, raw)
		if err != nil {
			return rep, err
		}
		if got == 0 && eof {
			break
		}

		feed.Fold(inFrames, raw, got)
		for c, ch := range inFrames {
			clear(ch[got:])
			a, b := e.in.Pair(c)
			e.codec.EncodeBlock(pick(buffer.HalfFor(buffer.Input, index), a, b), ch)
		}

		if err := e.bufferSwitch(index, int64(rep.Frames)); err != nil {
			return rep, err
		}

		for c, ch := range outFrames {
			a, b := e.out.Pair(c)
			e.codec.DecodeBlock(ch, pick(buffer.HalfFor(buffer.Output, index), a, b))
		}
		if err := sink.WriteFrames(outFrames); err != nil {
			return rep, fmt.Errorf("sink: %w", err)
		}

		rep.Periods++
		rep.Frames += got
		index ^= 1

		if eof {
			break
		}
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				return rep, ctx.Err()
			}
		}
	}

	st := e.host.Stats()
	e.log.Printf("emulator: %d periods, %d frames, %d switches, %d underruns",
		rep.Periods, rep.Frames, st.Switches, st.Underruns)

	return rep, nil
}

func (e *Emulator[T]) bufferSwitch(index int32, position int64) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return ErrClosed
	}

	if !e.timeInfo {
		e.host.BufferSwitch(index, asio.True)
		return nil
	}

	e.time.TimeInfo = asio.TimeInfo{
		Speed:          1,
		SystemTime:     time.Since(e.start).Nanoseconds(),
		SamplePosition: position,
		SampleRate:     float64(e.cfg.SampleRate),
		Flags:          asio.SystemTimeValid | asio.SamplePositionValid | asio.SampleRateValid | asio.SpeedValid,
	}
	e.host.BufferSwitchTimeInfo(&e.time, index, asio.True)
	return nil
}

// Close stops the device. A switch in progress completes first.
func (e *Emulator[T]) Close() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.host.Close()
}

// readPeriod reads until dst is full or the source ends.
func readPeriod(src feed.Source, dst [][]float64) (int, bool, error) {
	n := feed.Frames(dst)
	view := make([][]float64, len(dst))
	got := 0
	for got < n {
		for c, ch := range dst {
			view[c] = ch[got:n]
		}
		k, err := src.ReadFrames(view)
		got += k
		if errors.Is(err, io.EOF) {
			return got, true, nil
		}
		if err != nil {
			return got, false, fmt.Errorf("reading source: %w", err)
		}
		if k == 0 {
			return got, true, nil
		}
	}
	return got, false, nil
}

func pick[T any](h buffer.Half, a, b []T) []T {
	if h == buffer.HalfA {
		return a
	}
	return b
}

func planar(channels, n int) [][]float64 {
	out := make([][]float64, channels)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}
