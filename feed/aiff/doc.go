// SPDX-License-Identifier: EPL-2.0

// Package aiff provides an AIFF decoder producing planar frames, built on
// github.com/go-audio/aiff. Only uncompressed integer PCM is read.
package aiff
