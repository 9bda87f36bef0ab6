// SPDX-License-Identifier: EPL-2.0

package asio

import "sync/atomic"

// HostEngineVersion is the answer to EngineVersion.
const HostEngineVersion = 2

// Messenger answers the driver's message callback with fixed replies and
// counts the requests the setup layer has to act on. Handle may be called
// from the driver's callback thread; the counters are atomic.
type Messenger struct {
	resets    atomic.Uint64
	resyncs   atomic.Uint64
	latencies atomic.Uint64
	overloads atomic.Uint64
}

// Handle answers one message. Selectors it does not know get 0, meaning
// "not supported", never an error.
func (m *Messenger) Handle(selector MessageSelector, value int32) int32 {
	switch selector {
	case SelectorSupported:
		if m.answers(MessageSelector(value)) {
			return 1
		}
		return 0
	case EngineVersion:
		return HostEngineVersion
	case ResetRequest:
		m.resets.Add(1)
		return 1
	case ResyncRequest:
		m.resyncs.Add(1)
		return 1
	case LatenciesChanged:
		m.latencies.Add(1)
		return 1
	case SupportsTimeInfo, SupportsTimeCode:
		return 1
	case Overload:
		m.overloads.Add(1)
		return 1
	}
	return 0
}

func (m *Messenger) answers(selector MessageSelector) bool {
	switch selector {
	case SelectorSupported, EngineVersion, ResetRequest, ResyncRequest,
		LatenciesChanged, SupportsTimeInfo, SupportsTimeCode, Overload:
		return true
	}
	return false
}

// Resets is the number of ResetRequest messages received.
func (m *Messenger) Resets() uint64 { return m.resets.Load() }

func (m *Messenger) Resyncs() uint64 { return m.resyncs.Load() }

func (m *Messenger) LatencyChanges() uint64 { return m.latencies.Load() }

func (m *Messenger) Overloads() uint64 { return m.overloads.Load() }
