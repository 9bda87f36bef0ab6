// SPDX-License-Identifier: EPL-2.0

package pingpong_test

import (
	"fmt"
	"unsafe"

	"github.com/ik5/pingpong"
	"github.com/ik5/pingpong/asio"
	"github.com/ik5/pingpong/codec"
	"github.com/ik5/pingpong/mix"
)

// Example_monoToStereo feeds one period of a mono input to a stereo output
// panned slightly right, the way a driver callback would.
func Example_monoToStereo() {
	const n = 4

	// Driver-owned memory: two halves per channel.
	var in, left, right [2][n]int16
	bind := func(idx int, name string, halves *[2][n]int16) pingpong.Binding {
		return pingpong.Binding{
			Index:   idx,
			Name:    name,
			Buffers: [2]unsafe.Pointer{unsafe.Pointer(&halves[0]), unsafe.Pointer(&halves[1])},
		}
	}

	pan := mix.Pan{Position: 0.5, Volume: 1}
	h, err := pingpong.Open(pingpong.Topology{
		Format:     codec.Int16LSB,
		BufferSize: n,
		SampleRate: 48000,
		Inputs:     []pingpong.Binding{bind(0, "Mic", &in)},
		Outputs:    []pingpong.Binding{bind(0, "Left", &left), bind(1, "Right", &right)},
		Pan:        &pan,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer h.Close()

	// With index 0 the host reads input half B and writes output half A.
	in[1] = [n]int16{0, 8000, -8000, 16000}
	h.BufferSwitch(0, asio.True)

	fmt.Println("left: ", left[0])
	fmt.Println("right:", right[0])
	fmt.Println("switches:", h.Stats().Switches)
	// Output:
	// left:  [0 2000 -2000 4000]
	// right: [0 6000 -6000 12000]
	// switches: 1
}
