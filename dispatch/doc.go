// SPDX-License-Identifier: EPL-2.0

// Package dispatch ties a session, its codec and a mixer to the driver's
// buffer-switch callback.
//
// A Dispatcher is Idle until Install binds a session and Active until
// Teardown. Each OnBufferSwitch call handles exactly one buffer period:
//
//  1. select the readable half of every input and decode it
//  2. route the decoded inputs through the mixer
//  3. select the writable half of every output and encode into it
//
// The callback may run at elevated priority, so it takes no locks, performs
// no I/O and allocates nothing; scratch buffers are sized at Install.
//
// # Underruns
//
// If the mixer produces fewer than N samples the remainder of each output is
// filled with silence and Underruns is incremented once for that period. The
// condition is never reported synchronously.
package dispatch
