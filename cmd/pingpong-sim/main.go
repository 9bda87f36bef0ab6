// Command pingpong-sim runs the double-buffer pipeline against an emulated
// driver, fed from an audio file.
//
// Usage:
//
//	pingpong-sim input.wav capture.wav                   # render to a WAV file
//	pingpong-sim -play -pan -0.5 voice.mp3               # listen, panned left
//	pingpong-sim -format int16 -buffer 64 -outputs 1 music.ogg mono.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/feed"
	"github.com/ik5/pingpong/feed/aiff"
	"github.com/ik5/pingpong/feed/mp3"
	"github.com/ik5/pingpong/feed/vorbis"
	"github.com/ik5/pingpong/feed/wav"
	"github.com/ik5/pingpong/internal/emulator"
	"github.com/ik5/pingpong/mix"
)

const (
	defaultBufferSize = 256
	defaultOutputs    = 2
	maxChannels       = 2
	captureBitDepth   = 24
)

// short names accepted by -format besides the tag names
var formatAliases = map[string]codec.Format{
	"int16":   codec.Int16LSB,
	"int32":   codec.Int32LSB,
	"float32": codec.Float32LSB,
	"float64": codec.Float64LSB,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	formatName := flag.String("format", "int32", "Driver sample format: int16, int32, int32lsb16..int32lsb24, float32, float64")
	bufferSize := flag.Int("buffer", defaultBufferSize, "Samples per buffer half")
	rate := flag.Int("rate", 0, "Device sample rate in Hz (0 = source rate)")
	inputs := flag.Int("inputs", 0, "Input channels, 1 or 2 (0 = source channels, at most 2)")
	outputs := flag.Int("outputs", defaultOutputs, "Output channels, 1 or 2")
	pan := flag.Float64("pan", 0, "Pan position for a mono input, -1 (left) to 1 (right)")
	volume := flag.Float64("volume", 1, "Linear output volume")
	play := flag.Bool("play", false, "Play through the sound card")
	realtime := flag.Bool("realtime", false, "Pace periods at the device rate without -play")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 || (len(args) == 1 && !*play) {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.{wav,aif,aiff,mp3,ogg} [capture.wav]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Give a capture file, -play, or both.\n\nOptions:\n")
		flag.PrintDefaults()
		return errors.New("insufficient arguments")
	}

	format, err := parseFormat(*formatName)
	if err != nil {
		return err
	}

	reg := feed.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(aiff.Decoder{}, "aif", "aiff")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")

	src, err := reg.Open(args[0])
	if err != nil {
		return err
	}
	defer src.Close()

	cfg := emulator.Config{
		Format:     format,
		BufferSize: *bufferSize,
		SampleRate: *rate,
		Inputs:     *inputs,
		Outputs:    *outputs,
		Pan:        &mix.Pan{Position: *pan, Volume: *volume},
		Realtime:   *realtime && !*play,
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = src.SampleRate()
	}
	if cfg.Inputs == 0 {
		cfg.Inputs = min(src.Channels(), maxChannels)
	}
	if *verbose {
		cfg.Logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
		cfg.Logger.Printf("source %s: %d Hz, %d channels", args[0], src.SampleRate(), src.Channels())
	}

	dev, err := emulator.Open(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	sinks := multiSink{}
	if len(args) == 2 {
		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer out.Close()

		w, err := wav.NewWriter(out, cfg.SampleRate, captureBitDepth, cfg.Outputs)
		if err != nil {
			return err
		}
		sinks = append(sinks, w)
	}
	if *play {
		p, err := emulator.NewPlayer(cfg.SampleRate, cfg.Outputs)
		if err != nil {
			return err
		}
		sinks = append(sinks, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, runErr := dev.Run(ctx, src, sinks)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if err := sinks.Close(); err != nil && runErr == nil {
		runErr = err
	}

	st := dev.Host().Stats()
	fmt.Printf("periods: %d  frames: %d  switches: %d  underruns: %d  rate: %.0f Hz\n",
		rep.Periods, rep.Frames, st.Switches, st.Underruns, st.SampleRate)
	if len(args) == 2 {
		fmt.Println("Wrote:", args[1])
	}

	return runErr
}

func parseFormat(name string) (codec.Format, error) {
	if f, ok := formatAliases[strings.ToLower(name)]; ok {
		return f, nil
	}
	f, err := codec.ParseFormat(name)
	if err != nil {
		return 0, fmt.Errorf("-format %q: %w", name, err)
	}
	if !f.Supported() {
		return 0, fmt.Errorf("-format %q: %w", name, codec.ErrUnsupportedFormat)
	}
	return f, nil
}

// multiSink fans a period out to several sinks.
type multiSink []emulator.Sink

func (m multiSink) WriteFrames(frames [][]float64) error {
	for _, s := range m {
		if err := s.WriteFrames(frames); err != nil {
			return err
		}
	}
	return nil
}

func (m multiSink) Close() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
