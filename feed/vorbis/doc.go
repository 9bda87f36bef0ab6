// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides an Ogg Vorbis decoder built on
// github.com/jfreymuth/oggvorbis.
package vorbis
