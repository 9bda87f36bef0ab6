// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"math"
	"sync"
)

// MockSource is a test helper that generates planar audio frames.
// It implements feed.Source (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float64
	closed      bool
}

// NewMockSource creates a source of totalFrames frames whose values come
// from waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float64) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float64 {
		return 0
	})
}

// NewSineSource creates a mock source with the same sine wave on every
// channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float64 {
		t := float64(frame) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	})
}

// NewConstantSource creates a mock source with a constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float64 {
		return value
	})
}

// NewRampSource numbers the frames: channel c of frame f holds
// (f+1)/scale, negated on odd channels.
func NewRampSource(sampleRate, channels, totalFrames int, scale float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, channel int) float64 {
		v := float64(frame+1) / scale
		if channel%2 == 1 {
			return -v
		}
		return v
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadFrames(dst [][]float64) (int, error) {
	if len(dst) != m.channels {
		return 0, errors.New("audiotest: channel count mismatch")
	}
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := m.totalFrames - m.generated
	for _, ch := range dst {
		frames = min(frames, len(ch))
	}

	for f := range frames {
		for c, ch := range dst {
			ch[f] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += frames

	return frames, nil
}

// CaptureSink records every period written to it. It is safe for use from
// several goroutines.
type CaptureSink struct {
	mtx      sync.Mutex
	channels [][]float64
	writes   int
	closed   bool
	err      error
}

// NewCaptureSink returns a sink whose WriteFrames fails with err, if err is
// not nil.
func NewCaptureSink(err error) *CaptureSink {
	return &CaptureSink{err: err}
}

func (s *CaptureSink) WriteFrames(frames [][]float64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.err != nil {
		return s.err
	}
	if s.channels == nil {
		s.channels = make([][]float64, len(frames))
	}
	for c, ch := range frames {
		s.channels[c] = append(s.channels[c], ch...)
	}
	s.writes++
	return nil
}

func (s *CaptureSink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

// Channel returns a copy of everything written to channel c.
func (s *CaptureSink) Channel(c int) []float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if c >= len(s.channels) {
		return nil
	}
	return append([]float64(nil), s.channels[c]...)
}

// Writes is the number of WriteFrames calls that succeeded.
func (s *CaptureSink) Writes() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.writes
}

func (s *CaptureSink) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.closed
}
