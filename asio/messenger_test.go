// SPDX-License-Identifier: EPL-2.0

package asio

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestMessenger_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		selector MessageSelector
		value    int32
		want     int32
	}{
		{SelectorSupported, int32(SupportsTimeInfo), 1},
		{SelectorSupported, int32(ResetRequest), 1},
		{SelectorSupported, int32(BufferSizeChange), 0},
		{SelectorSupported, int32(SupportsInputMonitor), 0},
		{SelectorSupported, 999, 0},
		{EngineVersion, 0, 2},
		{BufferSizeChange, 512, 0},
		{SupportsTimeInfo, 0, 1},
		{SupportsTimeCode, 0, 1},
		{MMCCommand, 3, 0},
		{SupportsInputMonitor, 0, 0},
		{SupportsOutputMeter, 0, 0},
		{MessageSelector(0), 0, 0},
		{MessageSelector(-7), 0, 0},
		{MessageSelector(4242), 0, 0},
	}

	var m Messenger
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Handle(tt.selector, tt.value), "%v(%d)", tt.selector, tt.value)
	}
}

func TestMessenger_Counters(t *testing.T) {
	t.Parallel()

	var m Messenger

	assert.Equal(t, int32(1), m.Handle(ResetRequest, 0))
	assert.Equal(t, int32(1), m.Handle(ResetRequest, 0))
	assert.Equal(t, int32(1), m.Handle(ResyncRequest, 0))
	assert.Equal(t, int32(1), m.Handle(LatenciesChanged, 0))
	assert.Equal(t, int32(1), m.Handle(Overload, 0))

	assert.Equal(t, uint64(2), m.Resets())
	assert.Equal(t, uint64(1), m.Resyncs())
	assert.Equal(t, uint64(1), m.LatencyChanges())
	assert.Equal(t, uint64(1), m.Overloads())
}

func TestMessageSelector_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SupportsTimeInfo", SupportsTimeInfo.String())
	assert.Equal(t, "Overload", Overload.String())
	assert.Equal(t, "MessageSelector(0)", MessageSelector(0).String())
	assert.Equal(t, "MessageSelector(16)", MessageSelector(16).String())
	assert.Equal(t, MessageSelector(15), Overload)
}

func TestTimeLayout(t *testing.T) {
	t.Parallel()

	// sizes follow the driver's packed C structures on 64-bit hosts
	assert.Equal(t, uintptr(48), unsafe.Sizeof(TimeInfo{}))
	assert.Equal(t, uintptr(88), unsafe.Sizeof(TimeCode{}))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(Time{}.TimeInfo))
}
