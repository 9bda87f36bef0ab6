// SPDX-License-Identifier: EPL-2.0

package session

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/pingpong/buffer"
	"github.com/ik5/pingpong/codec"
)

// ChannelSpec describes one hardware channel as reported by the driver.
type ChannelSpec[T codec.Sample] struct {
	Index int
	Name  string
	A, B  []T
}

// Config is everything the driver setup layer learned before arming the
// callbacks.
type Config[T codec.Sample] struct {
	Format     codec.Format
	BufferSize int     // samples per half
	SampleRate float64 // nominal, informational
	Inputs     []ChannelSpec[T]
	Outputs    []ChannelSpec[T]
}

// Channel is a view over one channel's double buffer. It owns no memory.
type Channel[T codec.Sample] struct {
	Index  int
	Name   string
	Buffer *buffer.DoubleBuffer[T]
}

func (c *Channel[T]) Direction() buffer.Direction { return c.Buffer.Direction() }

func (c *Channel[T]) String() string {
	return fmt.Sprintf("%v %d (%s)", c.Direction(), c.Index, c.Name)
}

// Session is the channel topology of an open device. It is built once and
// read-only afterwards.
type Session[T codec.Sample] struct {
	format     codec.Format
	codec      *codec.Codec[T]
	bufferSize int
	sampleRate float64
	inputs     []*Channel[T]
	outputs    []*Channel[T]
}

// New validates cfg and binds every channel to its double buffer.
func New[T codec.Sample](cfg Config[T]) (*Session[T], error) {
	if cfg.BufferSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBufferSize, cfg.BufferSize)
	}
	if math.IsNaN(cfg.SampleRate) || cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}
	if len(cfg.Inputs) == 0 || len(cfg.Outputs) == 0 {
		return nil, fmt.Errorf("%w: %d inputs, %d outputs", ErrNoChannels, len(cfg.Inputs), len(cfg.Outputs))
	}

	c, err := codec.New[T](cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session[T]{
		format:     cfg.Format,
		codec:      c,
		bufferSize: cfg.BufferSize,
		sampleRate: cfg.SampleRate,
	}

	s.inputs, err = bind(buffer.Input, cfg.Inputs, cfg.BufferSize)
	if err != nil {
		return nil, err
	}
	s.outputs, err = bind(buffer.Output, cfg.Outputs, cfg.BufferSize)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func bind[T codec.Sample](dir buffer.Direction, specs []ChannelSpec[T], n int) ([]*Channel[T], error) {
	channels := make([]*Channel[T], 0, len(specs))
	seen := make(map[int]struct{}, len(specs))

	for _, spec := range specs {
		if _, dup := seen[spec.Index]; dup {
			return nil, fmt.Errorf("%w: %v %d", ErrDuplicateChannel, dir, spec.Index)
		}
		seen[spec.Index] = struct{}{}

		db, err := buffer.New(dir, spec.A, spec.B)
		if err != nil {
			return nil, fmt.Errorf("%v channel %d (%s): %w", dir, spec.Index, spec.Name, err)
		}
		if db.Len() != n {
			return nil, fmt.Errorf("%v channel %d (%s): %w: want %d samples, have %d",
				dir, spec.Index, spec.Name, buffer.ErrLengthMismatch, n, db.Len())
		}

		channels = append(channels, &Channel[T]{Index: spec.Index, Name: spec.Name, Buffer: db})
	}

	return channels, nil
}

func (s *Session[T]) Format() codec.Format { return s.format }

func (s *Session[T]) Codec() *codec.Codec[T] { return s.codec }

// BufferSize is N, the number of samples per buffer half.
func (s *Session[T]) BufferSize() int { return s.bufferSize }

func (s *Session[T]) SampleRate() float64 { return s.sampleRate }

// Inputs returns the input channels in driver order. The slice is shared.
func (s *Session[T]) Inputs() []*Channel[T] { return s.inputs }

// Outputs returns the output channels in driver order. The slice is shared.
func (s *Session[T]) Outputs() []*Channel[T] { return s.outputs }

// Period is the real-time budget of one buffer switch.
func (s *Session[T]) Period() time.Duration {
	return time.Duration(float64(s.bufferSize) / s.sampleRate * float64(time.Second))
}
