// SPDX-License-Identifier: EPL-2.0

// Package wav decodes integer PCM WAV files into planar frames and writes
// captured periods back out, both through github.com/go-audio/wav.
//
// 16, 24 and 32 bit files are accepted. Values are normalized with the same
// full-scale constant the driver codecs use, 2^(bits-1)-1, so a Writer and
// Decoder round trip returns each sample within one step of its input.
package wav
