// SPDX-License-Identifier: EPL-2.0

// Package feed supplies test and simulation stimulus for the pipeline:
// audio files decoded into planar float64 frames.
//
// Each format lives in its own subpackage and registers by extension:
//
//	reg := feed.NewRegistry()
//	reg.Register(wav.Decoder{}, "wav", "wave")
//	reg.Register(mp3.Decoder{}, "mp3")
//
//	src, err := reg.Open("take1.wav")
//	if err != nil {
//		return err
//	}
//	defer src.Close()
//
//	frames := [][]float64{make([]float64, 256), make([]float64, 256)}
//	n, err := src.ReadFrames(frames)
//
// None of this runs on the real-time path; decoders allocate and block.
package feed
