// SPDX-License-Identifier: EPL-2.0

// Package emulator is a software stand-in for a double-buffered audio
// driver. It lets the pipeline run end to end without hardware: a feed
// provides the input signal and a Sink (a WAV Writer, or the sound card
// through Player) takes the output.
//
// Build with -tags headless to drop the sound card dependency.
package emulator
