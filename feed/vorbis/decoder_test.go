// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pingpong/feed"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf[:len(buf)/m.channels*m.channels], m.samples[m.offset:])
	m.offset += n
	if m.offset >= len(m.samples) {
		return n, io.EOF
	}
	return n, nil
}

func newTestSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data")))
	assert.Error(t, err)
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestSource_ReadFrames_Mono(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 22050, channels: 1, samples: []float32{0.5, -0.5, 0.25}})
	assert.Equal(t, 22050, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	dst := [][]float64{make([]float64, 2)}
	n, err := src.ReadFrames(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{0.5, -0.5}, dst[0])

	n, err = src.ReadFrames(dst)
	require.NoError(t, err, "last data arrives with EOF")
	assert.Equal(t, 1, n)
	assert.Equal(t, 0.25, dst[0][0])

	n, err = src.ReadFrames(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_ReadFrames_Stereo(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{channels: 2, samples: []float32{1, -1, 0.5, -0.5}})

	dst := [][]float64{make([]float64, 4), make([]float64, 4)}
	n, err := src.ReadFrames(dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{1, 0.5}, dst[0][:2])
	assert.Equal(t, []float64{-1, -0.5}, dst[1][:2])
}

func TestSource_ReadFrames_MultipleChannels(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{channels: 6, samples: []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5}})

	dst := make([][]float64, 6)
	for i := range dst {
		dst[i] = make([]float64, 1)
	}
	n, err := src.ReadFrames(dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 0.5, dst[5][0], 1e-7)
}

func TestSource_ReadFrames_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad packet")
	src := newTestSource(&mockOggVorbisReader{channels: 1, err: boom})

	_, err := src.ReadFrames([][]float64{make([]float64, 1)})
	assert.ErrorIs(t, err, boom)

	_, err = src.ReadFrames([][]float64{make([]float64, 1), make([]float64, 1)})
	assert.ErrorIs(t, err, feed.ErrChannelMismatch)

	n, err := src.ReadFrames([][]float64{{}})
	assert.Zero(t, n)
	assert.NoError(t, err)
}
