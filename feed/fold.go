// SPDX-License-Identifier: EPL-2.0

package feed

import (
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Fold fits frames of src onto the channel count of dst. With more source
// channels than destinations every destination gets the average of all
// source channels; with fewer, the extra destinations repeat channel 0;
// otherwise channels are copied one to one.
//
// Every dst and src slice must hold at least frames values.
func Fold(dst, src [][]float64, frames int) {
	if len(dst) == 0 || len(src) == 0 || frames <= 0 {
		return
	}

	if len(src) > len(dst) {
		mono := dst[0][:frames]
		copy(mono, src[0][:frames])
		for _, ch := range src[1:] {
			floats.Add(mono, ch[:frames])
		}
		f64.Scale(mono, mono, 1/float64(len(src)))
		for _, out := range dst[1:] {
			copy(out[:frames], mono)
		}
		return
	}

	for c, out := range dst {
		in := src[0]
		if c < len(src) {
			in = src[c]
		}
		copy(out[:frames], in[:frames])
	}
}
