package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), Protocol: 2})
	t.Cleanup(func() { client.Close() })
	return NewHub(client, "hrms:")
}

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		require.True(t, ok, "subscription closed before an event arrived")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHubDeliversToSubscribedChannel(t *testing.T) {
	hub := newTestHub(t)
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, "employee:U1")
	require.NoError(t, err)
	defer sub.Close()

	other, err := hub.Subscribe(ctx, "employee:U2")
	require.NoError(t, err)
	defer other.Close()

	require.NoError(t, hub.Publish(ctx, "employee:U1", Event{
		Type:    "session.terminated",
		Payload: map[string]any{"reason": "spoofing"},
	}))

	event := receive(t, sub)
	assert.Equal(t, "session.terminated", event.Type)
	assert.Equal(t, "employee:U1", event.Channel)
	assert.False(t, event.SentAt.IsZero())

	select {
	case event := <-other.Events():
		t.Fatalf("unexpected event on another employee's channel: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscriptionCloseReleasesResources(t *testing.T) {
	hub := newTestHub(t)
	ctx := context.Background()

	sub, err := hub.Subscribe(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Subscribers())

	require.NoError(t, sub.Close())
	assert.NoError(t, sub.Close(), "closing twice is safe")
	assert.Equal(t, 0, hub.Subscribers())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed")
	}
}

func TestHubCloseTearsDownSubscriptions(t *testing.T) {
	hub := newTestHub(t)
	ctx := context.Background()

	first, err := hub.Subscribe(ctx, "admin")
	require.NoError(t, err)
	second, err := hub.Subscribe(ctx, "employee:U1")
	require.NoError(t, err)

	require.NoError(t, hub.Close())
	assert.Equal(t, 0, hub.Subscribers())

	for _, sub := range []*Subscription{first, second} {
		select {
		case <-sub.Done():
		case <-time.After(time.Second):
			t.Fatal("subscription was not closed with the hub")
		}
	}

	assert.ErrorIs(t, hub.Publish(ctx, "admin", Event{Type: "verification.completed"}), ErrHubClosed)
	_, err = hub.Subscribe(ctx, "admin")
	assert.ErrorIs(t, err, ErrHubClosed)
}
