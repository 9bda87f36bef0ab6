// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/feed"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement feed.Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	codec      *codec.Codec[int32]
	intBuf     *goaudio.IntBuffer
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
	if cap(s.intBuf.Data) < need {
		s.intBuf.Data = make([]int, need)
	}
	s.intBuf.Data = s.intBuf.Data[:need]

	n, err := s.dec.PCMBuffer(s.intBuf)
	switch {
	case err == io.EOF, err == io.ErrUnexpectedEOF && n > 0:
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("reading aiff data: %w", err)
	}
	if n == 0 {
		s.eof = true
		return 0, io.EOF
	}

	// If we got fewer samples than requested we're at the end
	if n < need {
		s.eof = true
	}

	return feed.DeinterleaveInts(dst, s.intBuf.Data[:n], s.codec), nil
}

// Decoder reads 16, 24 and 32 bit AIFF files.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (feed.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// This is a limitation of go-audio
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	c, err := feed.PCMCodec(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		codec:      c,
		intBuf:     &goaudio.IntBuffer{Format: format, Data: make([]int, 4096)},
	}, nil
}
