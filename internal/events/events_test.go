package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDelivery(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(NOTIFICATION_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.PublishNotification(4, map[string]any{"message": "Reminder"}))

	select {
	case event := <-received:
		assert.Equal(t, NOTIFICATION, event.Type)
		assert.Equal(t, NOTIFICATION_CHANNEL, event.Channel)
		require.NotNil(t, event.AccountID)
		assert.Equal(t, 4, *event.AccountID)
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
		assert.Equal(t, "Reminder", event.Data["message"])
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestEventBus_OtherChannelNotDelivered(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(BROADCAST_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.PublishNotification(1, nil))

	select {
	case <-received:
		t.Fatal("unexpected delivery")
	case <-time.After(50 * time.Millisecond):
	}
}
