// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format    Format
		name      string
		size      int
		bits      int
		float     bool
		supported bool
	}{
		{Int16LSB, "Int16LSB", 2, 16, false, true},
		{Int24LSB, "Int24LSB", 3, 24, false, false},
		{Int32LSB, "Int32LSB", 4, 32, false, true},
		{Int32LSB20, "Int32LSB20", 4, 20, false, true},
		{Float32LSB, "Float32LSB", 4, 32, true, true},
		{Float64LSB, "Float64LSB", 8, 64, true, true},
		{Int32MSB, "Int32MSB", 4, 32, false, false},
		{DSDInt8MSB1, "DSDInt8MSB1", 1, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.format.Known())
			assert.Equal(t, tt.name, tt.format.String())
			assert.Equal(t, tt.size, tt.format.Size())
			assert.Equal(t, tt.bits, tt.format.Bits())
			assert.Equal(t, tt.float, tt.format.IsFloat())
			assert.Equal(t, tt.supported, tt.format.Supported())
		})
	}
}

func TestFormat_Unknown(t *testing.T) {
	t.Parallel()

	f := Format(5)
	assert.False(t, f.Known())
	assert.False(t, f.Supported())
	assert.Zero(t, f.Size())
	assert.Equal(t, "Format(5)", f.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("Int32LSB24")
	require.NoError(t, err)
	assert.Equal(t, Int32LSB24, f)

	f, err = ParseFormat("float32lsb")
	require.NoError(t, err)
	assert.Equal(t, Float32LSB, f)

	_, err = ParseFormat("Int12LSB")
	require.ErrorIs(t, err, ErrUnknownFormat)
}
