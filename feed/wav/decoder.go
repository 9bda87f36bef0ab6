// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/feed"
)

// pcmReader is the part of wav.Decoder a source reads from; tests stub it.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
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
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.eof = true
		err = nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading wav data: %w", err)
	}
	if n == 0 {
		s.eof = true
		return 0, io.EOF
	}

	return feed.DeinterleaveInts(dst, s.intBuf.Data[:n], s.codec), nil
}

// Decoder reads integer PCM WAV files of 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (feed.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading wav header: %w", err)
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	c, err := feed.PCMCodec(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrNotWavFile
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		codec:      c,
		intBuf:     &goaudio.IntBuffer{Format: format, Data: make([]int, 4096)},
	}, nil
}

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xfffe
)
