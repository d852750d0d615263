package ws

import (
	"testing"
	"time"

	"hospital-scheduling/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(topics ...string) *Client {
	return &Client{
		topics: topics,
		send:   make(chan []byte, 8),
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub(testutil.Logger())

	client := newTestClient("schedule:rf:2026-09-07")
	hub.Register(client)

	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 1, hub.TopicCount("schedule:rf:2026-09-07"))

	hub.Broadcast("schedule:rf:2026-09-07", []byte("refetch"))

	select {
	case msg := <-client.send:
		assert.Equal(t, "refetch", string(msg))
	default:
		t.Fatal("expected a message on the client send channel")
	}
}

func TestHubBroadcastOnlyToSubscribers(t *testing.T) {
	hub := NewHub(testutil.Logger())

	rfViewer := newTestClient("schedule:rf:2026-09-07")
	therapyViewer := newTestClient("schedule:therapy:2026-09-07")
	hub.Register(rfViewer)
	hub.Register(therapyViewer)

	hub.Broadcast("schedule:rf:2026-09-07", []byte("x"))

	assert.Len(t, rfViewer.send, 1)
	assert.Empty(t, therapyViewer.send)
}

func TestHubSubscribeUnsubscribe(t *testing.T) {
	hub := NewHub(testutil.Logger())

	client := newTestClient()
	hub.Register(client)
	assert.Zero(t, hub.TopicCount("schedule:rf:2026-09-07"))

	hub.Subscribe(client, []string{"schedule:rf:2026-09-07", "schedule:rf:2026-09-08"})
	assert.Equal(t, 1, hub.TopicCount("schedule:rf:2026-09-07"))
	assert.Equal(t, 1, hub.TopicCount("schedule:rf:2026-09-08"))

	hub.Unsubscribe(client, []string{"schedule:rf:2026-09-07"})
	assert.Zero(t, hub.TopicCount("schedule:rf:2026-09-07"))
	assert.Equal(t, 1, hub.TopicCount("schedule:rf:2026-09-08"))

	hub.Broadcast("schedule:rf:2026-09-07", []byte("x"))
	assert.Empty(t, client.send)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(testutil.Logger())

	client := newTestClient("schedule:rf:2026-09-07")
	hub.Register(client)
	hub.Unregister(client)

	assert.Zero(t, hub.ClientCount())
	assert.Zero(t, hub.TopicCount("schedule:rf:2026-09-07"))

	_, open := <-client.send
	assert.False(t, open, "send channel closes on unregister")

	// Unregistering twice is a no-op, not a double close.
	hub.Unregister(client)
}

func TestHubSlowClientSkipped(t *testing.T) {
	hub := NewHub(testutil.Logger())

	slow := &Client{topics: []string{"t"}, send: make(chan []byte)} // no buffer, never read
	fast := newTestClient("t")
	hub.Register(slow)
	hub.Register(fast)

	done := make(chan struct{})
	go func() {
		hub.Broadcast("t", []byte("x"))
		close(done)
	}()

	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond, "broadcast must not block on a slow client")
	assert.Len(t, fast.send, 1)
}
