// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/feed"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels   = 2
	frameBytes = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	codec      *codec.Codec[int16]
	buf        []byte
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadFrames(dst [][]float64) (int, error) {
	if err := feed.CheckChannels(dst, channels); err != nil {
		return 0, err
	}
	if s.eof {
		return 0, io.EOF
	}
	frames := feed.Frames(dst)
	if frames == 0 {
		return 0, nil
	}

	need := frames * frameBytes
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		s.eof = true
	default:
		return 0, fmt.Errorf("decoding mp3: %w", err)
	}

	got := n / frameBytes
	if got == 0 {
		return 0, io.EOF
	}

	left, right := dst[0], dst[1]
	for f := range got {
		b := s.buf[f*frameBytes:]
		left[f] = s.codec.Decode(int16(binary.LittleEndian.Uint16(b[0:2])))
		right[f] = s.codec.Decode(int16(binary.LittleEndian.Uint16(b[2:4])))
	}

	return got, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (feed.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return newSource(dec)
}

func newSource(dec mp3Reader) (*source, error) {
	c, err := codec.New[int16](codec.Int16LSB)
	if err != nil {
		return nil, err
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		codec:      c,
		buf:        make([]byte, 8192),
	}, nil
}
