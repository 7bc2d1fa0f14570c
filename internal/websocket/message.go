package websocket

import (
	"encoding/json"

	"github.com/dkotenko/timekit-be/internal/models"
)

// Inbound actions accepted from clients. Anything else is ignored.
const (
	ActionCreateTimer = "create_timer"
	ActionStopTimer   = "stop_timer"
)

// Inbound is a message received from a client.
type Inbound struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	TimerID     string `json:"timerId"`
}

// DecodeInbound parses a client frame defensively. A frame that is not valid
// JSON decodes to the zero Inbound, whose empty Action falls through to the
// unknown-action branch instead of crashing the connection.
func DecodeInbound(data []byte) Inbound {
	var msg Inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return Inbound{}
	}
	return msg
}

// Outbound message types.
const (
	// TypeAllTimers is the full snapshot sent on connect and after mutations.
	TypeAllTimers = "all_timers"
	// TypeActiveTimers is the periodic snapshot with live progress.
	TypeActiveTimers = "active_timers"
)

// Envelope is the wire format of every server-to-client message.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewAllTimersMessage builds a full-snapshot frame.
func NewAllTimersMessage(timers []models.Timer) ([]byte, error) {
	return json.Marshal(Envelope{Type: TypeAllTimers, Data: timers})
}

// NewActiveTimersMessage builds a periodic live-progress frame.
func NewActiveTimersMessage(timers []models.Timer) ([]byte, error) {
	return json.Marshal(Envelope{Type: TypeActiveTimers, Data: timers})
}
