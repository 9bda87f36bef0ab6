// SPDX-License-Identifier: EPL-2.0

// Package pingpong is the real-time core of a double-buffered ("ping-pong")
// audio host.
//
// A driver owns two buffer halves per channel and, once per period, tells
// the host which half to work on. For that period the host reads the input
// half the driver just finished filling, converts it to float64, routes it
// to the outputs, and writes the output half the driver will play next.
//
// # Opening a device
//
// The setup layer negotiates format, buffer size and channels with the
// driver, then hands the result to Open:
//
//	h, err := pingpong.Open(pingpong.Topology{
//		Format:     codec.Int32LSB,
//		BufferSize: 256,
//		SampleRate: 48000,
//		Inputs:     inputs,  // driver buffer addresses per channel
//		Outputs:    outputs,
//	})
//	if err != nil {
//		// fatal for this device
//	}
//	defer h.Close()
//
// and forwards the driver's callbacks to h.BufferSwitch or
// h.BufferSwitchTimeInfo, h.SampleRateDidChange and h.Message.
//
// # Packages
//
//   - codec converts between the driver's sample formats and float64
//   - buffer holds the two halves of a channel and picks the active one
//   - mix routes inputs to outputs with a linear pan law
//   - session checks and binds the negotiated topology
//   - dispatch runs one buffer period per callback
//   - asio describes the callback ABI and answers driver messages
//   - feed decodes files into planar float64 for the emulator
//
// The callback path performs no allocation, locking or I/O once Open has
// returned.
package pingpong
