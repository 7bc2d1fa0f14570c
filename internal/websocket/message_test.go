package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkotenko/timekit-be/internal/models"
)

func TestDecodeInbound(t *testing.T) {
	msg := DecodeInbound([]byte(`{"action":"create_timer","description":"focus"}`))
	assert.Equal(t, ActionCreateTimer, msg.Action)
	assert.Equal(t, "focus", msg.Description)

	msg = DecodeInbound([]byte(`{"action":"stop_timer","timerId":"t1"}`))
	assert.Equal(t, ActionStopTimer, msg.Action)
	assert.Equal(t, "t1", msg.TimerID)
}

func TestDecodeInboundDefensive(t *testing.T) {
	// Garbage, truncated JSON and wrong shapes all map to the zero value
	// instead of an error; the empty Action lands in the unknown branch.
	for _, raw := range []string{"", "not json", `{"action":`, `[1,2,3]`, `"a string"`} {
		msg := DecodeInbound([]byte(raw))
		assert.Empty(t, msg.Action, "input %q must decode to the unknown variant", raw)
	}

	// Unknown fields are ignored, unknown actions pass through as-is.
	msg := DecodeInbound([]byte(`{"action":"reverse_time","speed":11}`))
	assert.Equal(t, "reverse_time", msg.Action)
}

func TestAllTimersMessageShape(t *testing.T) {
	data, err := NewAllTimersMessage([]models.Timer{})
	require.NoError(t, err)

	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, TypeAllTimers, envelope.Type)
	assert.JSONEq(t, "[]", string(envelope.Data), "an empty snapshot must serialize as [] not null")
}

func TestActiveTimersMessageShape(t *testing.T) {
	progress := int64(1500)
	timers := []models.Timer{{ID: "t1", UserID: "u1", IsActive: true, Progress: &progress}}

	data, err := NewActiveTimersMessage(timers)
	require.NoError(t, err)

	var envelope struct {
		Type string         `json:"type"`
		Data []models.Timer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, TypeActiveTimers, envelope.Type)
	require.Len(t, envelope.Data, 1)
	require.NotNil(t, envelope.Data[0].Progress)
	assert.EqualValues(t, 1500, *envelope.Data[0].Progress)
}
