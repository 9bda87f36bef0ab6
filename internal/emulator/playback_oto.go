//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package emulator

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/tphakala/simd/f64"

	"github.com/ik5/pingpong/feed"
)

// Player is a Sink that plays periods on the default sound card. Writes
// block until the card has taken the previous data, so a Run feeding a
// Player is paced by the hardware clock.
type Player struct {
	ctx      *oto.Context
	player   *oto.Player
	pr       *io.PipeReader
	pw       *io.PipeWriter
	channels int

	interleaved []float64
	bytes       []byte
	started     bool
	mutex       sync.Mutex // Only for setup/control operations
}

// NewPlayer opens the sound card. Only one Player may exist per process.
func NewPlayer(sampleRate, channels int) (*Player, error) {
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d playback channels", ErrInvalidChannels, channels)
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	pr, pw := io.Pipe()
	return &Player{
		ctx:      ctx,
		player:   ctx.NewPlayer(pr),
		pr:       pr,
		pw:       pw,
		channels: channels,
	}, nil
}

// WriteFrames queues one period for playback.
func (p *Player) WriteFrames(frames [][]float64) error {
	if err := feed.CheckChannels(frames, p.channels); err != nil {
		return err
	}
	n := feed.Frames(frames)
	if n == 0 {
		return nil
	}

	samples := n * p.channels
	if cap(p.interleaved) < samples {
		p.interleaved = make([]float64, samples)
		p.bytes = make([]byte, samples*4)
	}
	p.interleaved = p.interleaved[:samples]
	p.bytes = p.bytes[:samples*4]

	if p.channels == 2 {
		f64.Interleave2(p.interleaved, frames[0][:n], frames[1][:n])
	} else {
		copy(p.interleaved, frames[0][:n])
	}
	for i, v := range p.interleaved {
		binary.LittleEndian.PutUint32(p.bytes[i*4:], math.Float32bits(float32(v)))
	}

	p.start()

	if _, err := p.pw.Write(p.bytes); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

func (p *Player) start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
	}
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.pw.Close()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	if err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}
