// SPDX-License-Identifier: EPL-2.0

// Package codec converts driver-native samples to and from the normalized
// float64 domain used by the rest of the pipeline.
//
// # Formats
//
// Format carries the driver's sample-type tag. Only little-endian containers
// that map directly onto a Go type can be converted:
//   - Int16LSB as int16
//   - Int32LSB and Int32LSB16/18/20/24 as int32
//   - Float32LSB as float32
//   - Float64LSB as float64
//
// Every other tag (big-endian, packed 24 bit, DSD) is rejected by New with
// ErrUnsupportedFormat. That is a setup-time failure; a Codec that exists
// can always convert.
//
// # Conversion
//
// Integer formats divide by the largest positive value of their significant
// bits (2^31-1 for Int32LSB, 2^23-1 for Int32LSB24) when decoding and
// multiply by the same constant when encoding. Encoding truncates toward
// zero and saturates, so Encode(Decode(x)) is within one native unit of x.
// Float formats are exact identities.
//
//	c, err := codec.New[int32](codec.Int32LSB)
//	if err != nil {
//	    return err // unsupported driver format
//	}
//	n := c.DecodeBlock(normalized, native)
//
// The native Go type is chosen once through the type parameter, so the block
// loops carry no per-sample dispatch.
package codec
