// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/pingpong/feed"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns how many it wrote,
	// a multiple of the channel count.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	buf        []float32
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadFrames(dst [][]float64) (int, error) {
	if err := feed.CheckChannels(dst, s.channels); err != nil {
		return 0, err
	}
	if s.eof {
		return 0, io.EOF
	}
	frames := feed.Frames(dst)
	if frames == 0 {
		return 0, nil
	}

	need := frames * s.channels
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf)
	switch {
	case err == io.EOF:
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("decoding vorbis: %w", err)
	}
	if n == 0 {
		s.eof = true
		return 0, io.EOF
	}

	return feed.Deinterleave(dst, s.buf[:n]), nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (feed.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		buf:        make([]float32, 4096),
	}, nil
}
