// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"
)

// Pan is the position/volume pair applied when a mono input feeds a stereo
// output. Position runs from -1 (hard left) to 1 (hard right); Volume is a
// linear gain.
type Pan struct {
	Position float64
	Volume   float64
}

// Center is unity volume with the source in the middle.
func Center() Pan {
	return Pan{Position: 0, Volume: 1}
}

// Gains returns the left and right gain of the linear pan law:
//
//	left  = 0.5 * (1 - p) * v
//	right = 0.5 * (1 + p) * v
//
// The centre position gives 0.5*v per side (-6 dB), not the -3 dB of an
// equal-power law.
func (p Pan) Gains() (left, right float64) {
	left = 0.5 * (1 - p.Position) * p.Volume
	right = 0.5 * (p.Position + 1) * p.Volume
	return left, right
}

// Validate rejects positions outside [-1, 1] and NaN values.
func (p Pan) Validate() error {
	if math.IsNaN(p.Position) || p.Position < -1 || p.Position > 1 {
		return fmt.Errorf("%w: position %v", ErrInvalidPan, p.Position)
	}
	if math.IsNaN(p.Volume) || math.IsInf(p.Volume, 0) {
		return fmt.Errorf("%w: volume %v", ErrInvalidPan, p.Volume)
	}
	return nil
}
