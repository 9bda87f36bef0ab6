// SPDX-License-Identifier: EPL-2.0

// Package session holds the channel topology of an open device: the native
// format, the buffer length N, and one double buffer per input and output
// channel. A Session is created once by the driver setup layer, before any
// callback is armed, and is only read afterwards.
package session
