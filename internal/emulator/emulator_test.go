// SPDX-License-Identifier: EPL-2.0

package emulator

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/ik5/pingpong/buffer"
	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/internal/audiotest"
	"github.com/ik5/pingpong/mix"
)

func TestRun_MonoToStereoFloat32(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	e, err := New[float32](Config{
		Format:     codec.Float32LSB,
		BufferSize: 4,
		SampleRate: 48000,
		Inputs:     1,
		Outputs:    2,
		Logger:     log.New(&logs, "", 0),
	})
	require.NoError(t, err)
	defer e.Close()

	src := audiotest.NewRampSource(48000, 1, 10, 16)
	sink := audiotest.NewCaptureSink(nil)

	rep, err := e.Run(context.Background(), src, sink)
	require.NoError(t, err)
	assert.Equal(t, Report{Periods: 3, Frames: 10}, rep)
	assert.Equal(t, 3, sink.Writes())

	want := make([]float64, 12)
	for f := range 10 {
		want[f] = 0.5 * float64(f+1) / 16
	}
	assert.Equal(t, want, sink.Channel(0), "left, last period padded with silence")
	assert.Equal(t, want, sink.Channel(1), "right")

	st := e.Host().Stats()
	assert.Equal(t, uint64(3), st.Switches)
	assert.Zero(t, st.Underruns)
	assert.Equal(t, int64(8), st.SamplePosition, "position of the last period")
	assert.Equal(t, 48000.0, st.SampleRate)

	assert.Contains(t, logs.String(), "time info true")
	assert.Contains(t, logs.String(), "3 periods, 10 frames")
}

func TestRun_FoldsWideSource(t *testing.T) {
	t.Parallel()

	e, err := New[float64](Config{
		Format:     codec.Float64LSB,
		BufferSize: 3,
		SampleRate: 8000,
		Inputs:     1,
		Outputs:    1,
	})
	require.NoError(t, err)
	defer e.Close()

	src := audiotest.NewMockSource(8000, 2, 6, func(_ int, c int) float64 {
		if c == 0 {
			return 0.5
		}
		return 0.25
	})
	sink := audiotest.NewCaptureSink(nil)

	rep, err := e.Run(context.Background(), src, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Periods)
	assert.True(t, floats.EqualApprox([]float64{0.375, 0.375, 0.375, 0.375, 0.375, 0.375}, sink.Channel(0), 1e-12),
		"%v", sink.Channel(0))
}

func TestRun_Int16Stereo(t *testing.T) {
	t.Parallel()

	d, err := Open(Config{
		Format:     codec.Int16LSB,
		BufferSize: 8,
		SampleRate: 44100,
		Inputs:     2,
		Outputs:    2,
		Pan:        &mix.Pan{Position: 0, Volume: 1},
	})
	require.NoError(t, err)
	defer d.Close()

	src := audiotest.NewSineSource(44100, 2, 64, 440)
	sink := audiotest.NewCaptureSink(nil)

	rep, err := d.Run(context.Background(), src, sink)
	require.NoError(t, err)
	assert.Equal(t, 8, rep.Periods)

	src.Reset()
	in := [][]float64{make([]float64, 64), make([]float64, 64)}
	_, err = src.ReadFrames(in)
	require.NoError(t, err)

	for c := range 2 {
		got := sink.Channel(c)
		require.Len(t, got, 64)
		assert.True(t, floats.EqualApprox(in[c], got, 3.0/32767), "channel %d", c)
	}
}

func TestRun_UsesBothHalves(t *testing.T) {
	t.Parallel()

	e, err := New[int32](Config{
		Format:     codec.Int32LSB,
		BufferSize: 2,
		SampleRate: 48000,
		Inputs:     1,
		Outputs:    1,
	})
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Run(context.Background(), audiotest.NewConstantSource(48000, 1, 4, 0.5), audiotest.NewCaptureSink(nil))
	require.NoError(t, err)

	// two periods: index 0 then 1, so both halves of each side hold data
	for _, a := range []*buffer.Arena[int32]{e.in, e.out} {
		regionA, regionB := a.Pair(0)
		assert.NotZero(t, regionA[0])
		assert.NotZero(t, regionB[0])
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	t.Parallel()

	d, err := Open(Config{Format: codec.Int32LSB, BufferSize: 16, SampleRate: 48000, Inputs: 1, Outputs: 1})
	require.NoError(t, err)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := audiotest.NewCaptureSink(nil)
	rep, err := d.Run(ctx, audiotest.NewSilentSource(48000, 1, 1000), sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Periods)
	assert.Zero(t, sink.Writes())
}

func TestRun_SinkError(t *testing.T) {
	t.Parallel()

	d, err := Open(Config{Format: codec.Float32LSB, BufferSize: 16, SampleRate: 48000, Inputs: 1, Outputs: 1})
	require.NoError(t, err)
	defer d.Close()

	full := errors.New("disk full")
	_, err = d.Run(context.Background(), audiotest.NewSilentSource(48000, 1, 100), audiotest.NewCaptureSink(full))
	assert.ErrorIs(t, err, full)
}

func TestRun_AfterClose(t *testing.T) {
	t.Parallel()

	d, err := Open(Config{Format: codec.Float64LSB, BufferSize: 4, SampleRate: 48000, Inputs: 1, Outputs: 1})
	require.NoError(t, err)

	d.Close()
	d.Close()

	_, err = d.Run(context.Background(), audiotest.NewSilentSource(48000, 1, 10), audiotest.NewCaptureSink(nil))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRun_EmptySource(t *testing.T) {
	t.Parallel()

	d, err := Open(Config{Format: codec.Int32LSB16, BufferSize: 4, SampleRate: 48000, Inputs: 1, Outputs: 2})
	require.NoError(t, err)
	defer d.Close()

	sink := audiotest.NewCaptureSink(nil)
	rep, err := d.Run(context.Background(), audiotest.NewSilentSource(48000, 1, 0), sink)
	require.NoError(t, err)
	assert.Zero(t, rep.Periods)
	assert.Zero(t, sink.Writes())
	assert.Zero(t, d.Host().Stats().Switches)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	base := Config{Format: codec.Int32LSB, BufferSize: 4, SampleRate: 48000, Inputs: 1, Outputs: 1}

	_, err := New[int16](base)
	assert.ErrorIs(t, err, codec.ErrFormatMismatch)

	cfg := base
	cfg.Inputs = 3
	_, err = New[int32](cfg)
	assert.ErrorIs(t, err, ErrInvalidChannels)

	cfg = base
	cfg.Outputs = 0
	_, err = New[int32](cfg)
	assert.ErrorIs(t, err, ErrInvalidChannels)

	cfg = base
	cfg.SampleRate = 0
	_, err = New[int32](cfg)
	assert.ErrorIs(t, err, ErrInvalidRate)

	cfg = base
	cfg.BufferSize = 0
	_, err = New[int32](cfg)
	assert.ErrorIs(t, err, buffer.ErrEmptyRegion)

	cfg = base
	cfg.Pan = &mix.Pan{Position: -3, Volume: 1}
	_, err = New[int32](cfg)
	assert.ErrorIs(t, err, mix.ErrInvalidPan)

	cfg = base
	cfg.Format = codec.Format(1234)
	_, err = Open(cfg)
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)

	cfg = base
	cfg.Format = codec.Int24LSB
	_, err = Open(cfg)
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestEmulator_Period(t *testing.T) {
	t.Parallel()

	e, err := New[int32](Config{Format: codec.Int32LSB, BufferSize: 480, SampleRate: 48000, Inputs: 1, Outputs: 1})
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, "10ms", e.Period().String())
}
