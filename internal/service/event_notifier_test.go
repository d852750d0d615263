package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{messages: make(map[string][][]byte)}
}

func (b *recordingBroadcaster) Broadcast(topic string, message []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages[topic] = append(b.messages[topic], message)
}

func (b *recordingBroadcaster) count(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages[topic])
}

func (b *recordingBroadcaster) first(topic string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.messages[topic][0]
}

func TestBookingEventTopic(t *testing.T) {
	event := BookingEvent{
		ScheduleKind: entity.ScheduleKindRF,
		Date:         "2026-09-07",
	}
	assert.Equal(t, "schedule:rf:2026-09-07", event.Topic())
}

func TestNotifierRoundTrip(t *testing.T) {
	redisClient, _ := testutil.Redis(t)
	hub := newRecordingBroadcaster()
	notifier := NewEventNotifier(redisClient, hub, testutil.Logger())

	ctx := context.Background()
	notifier.Run(ctx)
	defer notifier.Stop()

	event := BookingEvent{
		BookingID:    uuid.New(),
		Kind:         EventBookingCreated,
		ScheduleKind: entity.ScheduleKindRF,
		Date:         "2026-09-07",
		ResourceID:   uuid.New(),
	}
	notifier.Publish(ctx, event)

	topic := event.Topic()
	require.Eventually(t, func() bool {
		return hub.count(topic) == 1
	}, 2*time.Second, 10*time.Millisecond, "event should reach the hub via redis")

	var received BookingEvent
	require.NoError(t, json.Unmarshal(hub.first(topic), &received))
	assert.Equal(t, event.BookingID, received.BookingID)
	assert.Equal(t, EventBookingCreated, received.Kind)
}

func TestNotifierOnEventHook(t *testing.T) {
	redisClient, _ := testutil.Redis(t)
	notifier := NewEventNotifier(redisClient, newRecordingBroadcaster(), testutil.Logger())

	var mu sync.Mutex
	var seen []BookingEvent
	notifier.SetOnEvent(func(event BookingEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, event)
	})

	ctx := context.Background()
	notifier.Run(ctx)
	defer notifier.Stop()

	notifier.Publish(ctx, BookingEvent{
		BookingID:    uuid.New(),
		Kind:         EventBookingCancelled,
		ScheduleKind: entity.ScheduleKindTherapy,
		Date:         "2026-09-08",
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, EventBookingCancelled, seen[0].Kind)
	assert.Equal(t, "2026-09-08", seen[0].Date)
}

func TestNotifierMalformedPayloadDropped(t *testing.T) {
	redisClient, _ := testutil.Redis(t)
	hub := newRecordingBroadcaster()
	notifier := NewEventNotifier(redisClient, hub, testutil.Logger())

	ctx := context.Background()
	notifier.Run(ctx)
	defer notifier.Stop()

	require.NoError(t, redisClient.Publish(ctx, BookingEventsChannel, "not json").Err())

	event := BookingEvent{BookingID: uuid.New(), Kind: EventBookingCreated, ScheduleKind: entity.ScheduleKindRF, Date: "2026-09-07"}
	notifier.Publish(ctx, event)

	require.Eventually(t, func() bool {
		return hub.count(event.Topic()) == 1
	}, 2*time.Second, 10*time.Millisecond, "a malformed message must not stall the stream")
}
