// SPDX-License-Identifier: EPL-2.0

// Package asio describes the driver callback ABI the pipeline is plugged
// into: the message selectors a driver may send mid-session, the time
// structures it passes with a buffer switch, and a Messenger that answers
// those messages.
//
// Nothing here talks to a driver. Driver discovery, COM object creation and
// capability negotiation live in the setup layer that owns the process.
package asio
