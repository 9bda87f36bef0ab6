// SPDX-License-Identifier: EPL-2.0

// Package buffer implements the per-channel ping-pong buffer and the rule
// that picks which half the host may touch for a given buffer-switch index.
//
// For an index of 0 an output writes half A and an input reads half B; for
// an index of 1 the roles swap. Inputs trail outputs by one half because the
// driver reports the half it is about to fill, and the host reads the other
// one.
//
// The regions are borrowed. A DoubleBuffer never grows, never reallocates
// and never swaps its A/B pair after construction. Arena provides the single
// allocation behind a set of pairs when the host, not a driver, owns the
// memory (tests, the software driver).
package buffer
