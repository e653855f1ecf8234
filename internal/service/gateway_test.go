package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoom_backend/internal/models"
)

func TestEnvelope_StateUpdateWireFormat(t *testing.T) {
	env := Envelope{
		Event: EventStateUpdate,
		Data: models.RoomSnapshot{
			Phase:        models.PhaseWaiting,
			TimeLeft:     0,
			ActivePlayer: models.SideNone,
			ViewersCount: 3,
			ChatMessages: []models.ChatMessage{},
			Donations:    []models.Donation{},
		},
	}

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	// 前端期望沒有發言方時 activePlayer 是 null 而不是空字串
	assert.JSONEq(t, `{
		"event": "state_update",
		"data": {
			"phase": "waiting",
			"timeLeft": 0,
			"activePlayer": null,
			"viewersCount": 3,
			"chatMessages": [],
			"donations": []
		}
	}`, string(raw))
}

func TestEnvelope_ActivePlayerSerializedAsLetter(t *testing.T) {
	raw, err := json.Marshal(models.RoomSnapshot{
		Phase:        models.PhaseRoundA,
		TimeLeft:     120,
		ActivePlayer: models.SideA,
		ChatMessages: []models.ChatMessage{},
		Donations:    []models.Donation{},
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"activePlayer":"A"`)
}

func TestEnvelope_ChatUpdateWireFormat(t *testing.T) {
	msg := models.ChatMessage{
		ID:         "msg-1",
		User:       "alice",
		Text:       "hello",
		IsDonation: false,
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(Envelope{Event: EventChatUpdate, Data: msg})
	require.NoError(t, err)

	// 非打賞消息不帶 amount 字段
	assert.NotContains(t, string(raw), "amount")
	assert.Contains(t, string(raw), `"isDonation":false`)
	assert.Contains(t, string(raw), `"user":"alice"`)
}

func TestInboundEnvelope_DecodeByEvent(t *testing.T) {
	var env inboundEnvelope
	require.NoError(t, json.Unmarshal([]byte(`{
		"event": "send_message",
		"data": {"user": "Rich Guy", "text": "go go", "isDonation": true, "amount": 100}
	}`), &env))
	assert.Equal(t, EventSendMessage, env.Event)

	var p MessagePayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, MessagePayload{User: "Rich Guy", Text: "go go", IsDonation: true, Amount: 100}, p)

	require.NoError(t, json.Unmarshal([]byte(`{"event":"admin_action","data":{"action":"start"}}`), &env))
	var a adminPayload
	require.NoError(t, json.Unmarshal(env.Data, &a))
	assert.Equal(t, ActionStart, a.Action)
}

func TestNewClient_UniqueIDs(t *testing.T) {
	a := NewClient(nil, "a", models.RoleViewer)
	b := NewClient(nil, "b", models.RoleViewer)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, models.SideNone, a.Side)
}
