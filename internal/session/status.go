// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

// =============================================================================
// API STATUS
// =============================================================================

// APIStatus is the client's belief about backend availability.
type APIStatus int

const (
	// StatusAvailable is the initial, optimistic state.
	StatusAvailable APIStatus = iota
	// StatusUnavailable follows a failed probe and disables the composer.
	StatusUnavailable
	// StatusError follows a failed send. Input stays enabled.
	StatusError
)

// String returns the lowercase name of the status.
func (s APIStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Label returns the text shown next to the status indicator.
func (s APIStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Online"
	case StatusUnavailable:
		return "Offline"
	default:
		return "Connecting..."
	}
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Event is an outcome that moves the status machine.
type Event int

const (
	ProbeSucceeded Event = iota
	ProbeFailed
	SendSucceeded
	SendFailed
)

// String returns the name of the event.
func (e Event) String() string {
	switch e {
	case ProbeSucceeded:
		return "probe_succeeded"
	case ProbeFailed:
		return "probe_failed"
	case SendSucceeded:
		return "send_succeeded"
	case SendFailed:
		return "send_failed"
	default:
		return "unknown"
	}
}

// Next returns the status that follows event. The current status does not
// influence the result; every event fully determines it.
func Next(current APIStatus, event Event) APIStatus {
	switch event {
	case ProbeSucceeded, SendSucceeded:
		return StatusAvailable
	case ProbeFailed:
		return StatusUnavailable
	case SendFailed:
		return StatusError
	default:
		return current
	}
}
