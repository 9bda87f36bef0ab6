package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/internal/audiotest"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want codec.Format
	}{
		{"int16", codec.Int16LSB},
		{"INT32", codec.Int32LSB},
		{"float64", codec.Float64LSB},
		{"int32lsb20", codec.Int32LSB20},
		{"Float32LSB", codec.Float32LSB},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := parseFormat("int24")
	assert.ErrorIs(t, err, codec.ErrUnknownFormat)

	_, err = parseFormat("Int24LSB")
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestMultiSink(t *testing.T) {
	t.Parallel()

	a := audiotest.NewCaptureSink(nil)
	b := audiotest.NewCaptureSink(nil)
	m := multiSink{a, b}

	require.NoError(t, m.WriteFrames([][]float64{{0.5, -0.5}}))
	require.NoError(t, m.Close())

	assert.Equal(t, []float64{0.5, -0.5}, a.Channel(0))
	assert.Equal(t, []float64{0.5, -0.5}, b.Channel(0))
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())

	full := errors.New("full")
	bad := multiSink{audiotest.NewCaptureSink(full), a}
	assert.ErrorIs(t, bad.WriteFrames([][]float64{{1}}), full)
	assert.Equal(t, 1, a.Writes(), "later sinks are skipped after a failure")
}
