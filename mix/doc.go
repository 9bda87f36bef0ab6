// SPDX-License-Identifier: EPL-2.0

// Package mix routes normalized sample streams between mono and stereo.
//
// # Routing
//
// A Router is built for one of four layouts:
//   - mono to mono: copy
//   - mono to stereo: linear pan law scaled by volume (see Pan.Gains)
//   - stereo to mono: (left + right) * volume, no headroom compensation
//   - stereo to stereo: copy per side, pan is not applied
//
// Anything wider than two channels on either side is rejected by NewRouter
// with ErrUnsupportedTopology.
//
//	r, err := mix.NewRouter(1, 2, mix.Pan{Position: -0.5, Volume: 0.8})
//	if err != nil {
//	    return err
//	}
//	n := r.Route([][]float64{left, right}, [][]float64{in})
//
// # Real-time use
//
// Route writes into caller-owned slices and allocates nothing. The pan may be
// changed from another goroutine with SetPan; each Route call reads it once,
// so a buffer is always mixed with a single consistent pan.
package mix
