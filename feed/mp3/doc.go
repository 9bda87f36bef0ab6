// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides an MP3 decoder built on github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces stereo; mono files come out with both channels
// equal.
package mp3
