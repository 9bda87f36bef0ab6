// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/feed"
)

// Writer captures planar float64 periods into an integer PCM WAV file.
// Samples are scaled, truncated and clamped the way the driver codecs do.
type Writer struct {
	enc      *wav.Encoder
	codec    *codec.Codec[int32]
	buf      *goaudio.IntBuffer
	channels int
	frames   int
	closed   bool
}

// NewWriter starts a WAV stream on w. The header is completed by Close,
// which is why w must be seekable. Close does not close w.
func NewWriter(w io.WriteSeeker, sampleRate, bitDepth, channels int) (*Writer, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}
	c, err := feed.PCMCodec(bitDepth)
	if err != nil {
		return nil, err
	}

	return &Writer{
		enc:   wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM),
		codec: c,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		channels: channels,
	}, nil
}

// WriteFrames appends the shortest len(frames[c]) frames.
func (w *Writer) WriteFrames(frames [][]float64) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := feed.CheckChannels(frames, w.channels); err != nil {
		return err
	}

	n := feed.Frames(frames)
	if n == 0 {
		return nil
	}

	need := n * w.channels
	if cap(w.buf.Data) < need {
		w.buf.Data = make([]int, need)
	}
	w.buf.Data = w.buf.Data[:need]

	for c, ch := range frames {
		for f, v := range ch[:n] {
			w.buf.Data[f*w.channels+c] = int(w.codec.Encode(v))
		}
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	w.frames += n
	return nil
}

// Frames is the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Close finalizes the header. Calling it again is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
