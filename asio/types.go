// SPDX-License-Identifier: EPL-2.0

package asio

import "fmt"

// Bool is the driver ABI's 32-bit boolean.
type Bool int32

const (
	False Bool = 0
	True  Bool = 1
)

// MessageSelector identifies a capability query or notification sent by the
// driver through the message callback.
type MessageSelector int32

const (
	SelectorSupported    MessageSelector = iota + 1 // value: selector, 1 if supported
	EngineVersion                                   // host implementation version, 2 or higher
	ResetRequest                                    // driver asks to be closed and reopened
	BufferSizeChange                                // new size in value; unsupported, answer 0
	ResyncRequest                                   // driver lost sync; restart the engine
	LatenciesChanged                                // refetch latencies
	SupportsTimeInfo                                // 1 selects the buffer-switch-with-time-info callback
	SupportsTimeCode                                // host evaluates time code
	MMCCommand                                      // unused
	SupportsInputMonitor                            // kAsioSupportsXXX: 1 if the host supports it
	SupportsInputGain
	SupportsInputMeter
	SupportsOutputGain
	SupportsOutputMeter
	Overload // driver detected an overload
)

var selectorNames = [...]string{
	SelectorSupported:    "SelectorSupported",
	EngineVersion:        "EngineVersion",
	ResetRequest:         "ResetRequest",
	BufferSizeChange:     "BufferSizeChange",
	ResyncRequest:        "ResyncRequest",
	LatenciesChanged:     "LatenciesChanged",
	SupportsTimeInfo:     "SupportsTimeInfo",
	SupportsTimeCode:     "SupportsTimeCode",
	MMCCommand:           "MMCCommand",
	SupportsInputMonitor: "SupportsInputMonitor",
	SupportsInputGain:    "SupportsInputGain",
	SupportsInputMeter:   "SupportsInputMeter",
	SupportsOutputGain:   "SupportsOutputGain",
	SupportsOutputMeter:  "SupportsOutputMeter",
	Overload:             "Overload",
}

func (s MessageSelector) String() string {
	if s > 0 && int(s) < len(selectorNames) {
		return selectorNames[s]
	}
	return fmt.Sprintf("MessageSelector(%d)", int32(s))
}

// TimeInfoFlags tell which TimeInfo fields carry data.
type TimeInfoFlags uint32

const (
	SystemTimeValid TimeInfoFlags = 1 << iota
	SamplePositionValid
	SampleRateValid
	SpeedValid
	SampleRateChanged
	ClockSourceChanged
)

// TimeCodeFlags tell how to read TimeCode.
type TimeCodeFlags uint32

const (
	TcValid TimeCodeFlags = 1 << iota
	TcRunning
	TcReverse
	TcOnspeed
	TcStill

	TcSpeedValid TimeCodeFlags = 1 << 8
)

// TimeInfo is the timing block the driver passes with a buffer switch.
type TimeInfo struct {
	Speed          float64 // absolute speed, 1 = nominal
	SystemTime     int64   // nanoseconds, related to SamplePosition
	SamplePosition int64
	SampleRate     float64
	Flags          TimeInfoFlags
	_              [12]byte
}

// TimeCode is optional and only meaningful when Flags has TcValid.
type TimeCode struct {
	Speed           float64 // fraction of nominal speed, 0 or 1 if unsupported
	TimeCodeSamples int64
	Flags           TimeCodeFlags
	_               [64]byte
}

// Time mirrors the driver's time structure, shared by input and output.
type Time struct {
	_        [4]int32
	TimeInfo TimeInfo
	TimeCode TimeCode
}
