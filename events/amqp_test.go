package events

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	ev := New(RoomNeedsCleaning, "org-1", map[string]interface{}{"roomId": "room-9"})

	msg, err := message(ev)
	require.NoError(t, err)

	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, ev.ID, msg.MessageId)
	assert.Equal(t, "room.needs_cleaning", msg.Type)
	assert.Equal(t, "org-1", msg.Headers["tenant_id"])

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, RoomNeedsCleaning, decoded.Type)
	assert.Equal(t, "room-9", decoded.Data["roomId"])
}

func TestNewAMQPPublisherDefaultsExchange(t *testing.T) {
	p := NewAMQPPublisher("amqp://localhost", "", nil)
	assert.Equal(t, "hotel.events", p.exchange)
}
