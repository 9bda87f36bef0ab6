// SPDX-License-Identifier: EPL-2.0

package feed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ik5/pingpong/codec"
)

// Source is a decoded audio stream read as planar float64 frames, one slice
// per channel, nominally in [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels in the stream; ReadFrames wants exactly this many slices.
	Channels() int
	// ReadFrames fills up to the shortest len(dst[c]) frames and returns
	// how many it wrote. At the end of the stream it returns 0, io.EOF.
	ReadFrames(dst [][]float64) (int, error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps file extensions ("wav", "mp3", ...) to decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds d for each extension, given with or without the dot and in
// any case.
func (r *Registry) Register(d Decoder, exts ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, ext := range exts {
		r.codecs[normalizeExt(ext)] = d
	}
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Extensions lists the registered extensions, unordered.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	return out
}

// Open decodes the file at path with the decoder registered for its
// extension. Closing the returned Source closes the file.
func (r *Registry) Open(path string) (Source, error) {
	d, ok := r.Get(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	src, err := d.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

type fileSource struct {
	Source
	f *os.File
}

func (s *fileSource) Close() error {
	err := s.Source.Close()
	if cerr := s.f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w", cerr)
	}
	return err
}

// Frames is the number of frames dst has room for: its shortest channel.
func Frames(dst [][]float64) int {
	if len(dst) == 0 {
		return 0
	}
	n := len(dst[0])
	for _, ch := range dst[1:] {
		n = min(n, len(ch))
	}
	return n
}

// CheckChannels returns ErrChannelMismatch unless dst has one slice per
// source channel.
func CheckChannels(dst [][]float64, channels int) error {
	if len(dst) != channels {
		return fmt.Errorf("%w: %d slices for %d channels", ErrChannelMismatch, len(dst), channels)
	}
	return nil
}

// PCMCodec returns the codec that scales integer PCM of the given bit depth
// held in 32-bit words, as file decoders hand it out.
func PCMCodec(bits int) (*codec.Codec[int32], error) {
	var f codec.Format
	switch bits {
	case 16:
		f = codec.Int32LSB16
	case 18:
		f = codec.Int32LSB18
	case 20:
		f = codec.Int32LSB20
	case 24:
		f = codec.Int32LSB24
	case 32:
		f = codec.Int32LSB
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
	return codec.New[int32](f)
}

// DeinterleaveInts spreads interleaved integer PCM over dst, decoding each
// value with c, and returns the number of whole frames written.
func DeinterleaveInts(dst [][]float64, src []int, c *codec.Codec[int32]) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}
	frames := min(len(src)/channels, Frames(dst))
	for f := range frames {
		base := f * channels
		for ch, out := range dst {
			out[f] = c.Decode(int32(src[base+ch]))
		}
	}
	return frames
}

// Deinterleave spreads interleaved float32 samples over dst and returns the
// number of whole frames written.
func Deinterleave(dst [][]float64, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}
	frames := min(len(src)/channels, Frames(dst))

	// Unrolled for the common cases
	switch channels {
	case 1:
		for f, v := range src[:frames] {
			dst[0][f] = float64(v)
		}
	case 2:
		left, right := dst[0], dst[1]
		for f := range frames {
			left[f] = float64(src[f<<1])
			right[f] = float64(src[f<<1+1])
		}
	default:
		for f := range frames {
			base := f * channels
			for ch, out := range dst {
				out[f] = float64(src[base+ch])
			}
		}
	}
	return frames
}
