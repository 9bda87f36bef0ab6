// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"strconv"
	"strings"
)

// Format is the driver's native sample-type tag. The numeric values are the
// ones the driver ABI reports per channel.
type Format int32

const (
	Int16MSB   Format = 0
	Int24MSB   Format = 1 // packed, used for 20 bits as well
	Int32MSB   Format = 2
	Float32MSB Format = 3
	Float64MSB Format = 4

	// 32 bit containers with 16/18/20/24 significant bits.
	Int32MSB16 Format = 8
	Int32MSB18 Format = 9
	Int32MSB20 Format = 10
	Int32MSB24 Format = 11

	Int16LSB   Format = 16
	Int24LSB   Format = 17 // packed, used for 20 bits as well
	Int32LSB   Format = 18
	Float32LSB Format = 19
	Float64LSB Format = 20

	Int32LSB16 Format = 24
	Int32LSB18 Format = 25
	Int32LSB20 Format = 26
	Int32LSB24 Format = 27

	DSDInt8LSB1 Format = 32 // 1 bit, 8 samples per byte, first sample in the LSB
	DSDInt8MSB1 Format = 33 // 1 bit, 8 samples per byte, first sample in the MSB
	DSDInt8NER8 Format = 40 // 8 bit, 1 sample per byte
)

type formatInfo struct {
	name  string
	size  int // container bytes
	bits  int // significant bits
	float bool
	// supported reports that the container maps onto a Go type on a
	// little-endian host without byte shuffling.
	supported bool
}

var formats = map[Format]formatInfo{
	Int16MSB:    {name: "Int16MSB", size: 2, bits: 16},
	Int24MSB:    {name: "Int24MSB", size: 3, bits: 24},
	Int32MSB:    {name: "Int32MSB", size: 4, bits: 32},
	Float32MSB:  {name: "Float32MSB", size: 4, bits: 32, float: true},
	Float64MSB:  {name: "Float64MSB", size: 8, bits: 64, float: true},
	Int32MSB16:  {name: "Int32MSB16", size: 4, bits: 16},
	Int32MSB18:  {name: "Int32MSB18", size: 4, bits: 18},
	Int32MSB20:  {name: "Int32MSB20", size: 4, bits: 20},
	Int32MSB24:  {name: "Int32MSB24", size: 4, bits: 24},
	Int16LSB:    {name: "Int16LSB", size: 2, bits: 16, supported: true},
	Int24LSB:    {name: "Int24LSB", size: 3, bits: 24},
	Int32LSB:    {name: "Int32LSB", size: 4, bits: 32, supported: true},
	Float32LSB:  {name: "Float32LSB", size: 4, bits: 32, float: true, supported: true},
	Float64LSB:  {name: "Float64LSB", size: 8, bits: 64, float: true, supported: true},
	Int32LSB16:  {name: "Int32LSB16", size: 4, bits: 16, supported: true},
	Int32LSB18:  {name: "Int32LSB18", size: 4, bits: 18, supported: true},
	Int32LSB20:  {name: "Int32LSB20", size: 4, bits: 20, supported: true},
	Int32LSB24:  {name: "Int32LSB24", size: 4, bits: 24, supported: true},
	DSDInt8LSB1: {name: "DSDInt8LSB1", size: 1, bits: 1},
	DSDInt8MSB1: {name: "DSDInt8MSB1", size: 1, bits: 1},
	DSDInt8NER8: {name: "DSDInt8NER8", size: 1, bits: 8},
}

func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.name
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Known reports whether f is a tag the driver ABI defines.
func (f Format) Known() bool {
	_, ok := formats[f]
	return ok
}

// Size returns the container size in bytes, 0 for unknown tags.
func (f Format) Size() int { return formats[f].size }

// Bits returns the number of significant bits, 0 for unknown tags.
func (f Format) Bits() int { return formats[f].bits }

func (f Format) IsFloat() bool { return formats[f].float }

// Supported reports whether a Codec can be built for f.
func (f Format) Supported() bool { return formats[f].supported }

// ParseFormat maps a tag name as returned by String, in any case, back to
// its Format.
func ParseFormat(name string) (Format, error) {
	for f, info := range formats {
		if strings.EqualFold(info.name, name) {
			return f, nil
		}
	}
	return 0, ErrUnknownFormat
}
