package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"hospital-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// BookingEventsChannel is the Redis pub/sub channel carrying one event per
// committed booking mutation.
const BookingEventsChannel = "bookings:events"

// Event kinds, one per mutation type.
const (
	EventBookingCreated   = "booking:created"
	EventBookingModified  = "booking:modified"
	EventBookingCancelled = "booking:cancelled"
)

// BookingEvent names a committed mutation with enough identity for a viewer
// to refetch the affected schedule. Subscribers re-fetch rather than patch
// client state, so no richer payload is needed.
type BookingEvent struct {
	BookingID    uuid.UUID           `json:"booking_id"`
	Kind         string              `json:"kind"`
	ScheduleKind entity.ScheduleKind `json:"schedule_kind"`
	Date         string              `json:"date"`
	ResourceID   uuid.UUID           `json:"resource_id"`
}

// Topic is the websocket topic viewers of the affected schedule subscribe to.
func (e BookingEvent) Topic() string {
	return fmt.Sprintf("schedule:%s:%s", e.ScheduleKind, e.Date)
}

// Broadcaster fans a message out to local websocket subscribers of a topic.
type Broadcaster interface {
	Broadcast(topic string, message []byte)
}

// EventNotifier publishes booking events to Redis and bridges the channel to
// the local websocket hub. Publishing through Redis rather than directly to
// the hub keeps multi-instance deployments consistent: every instance's
// viewers see every mutation.
//
// Delivery is best-effort; a missed event is tolerated because viewers also
// re-fetch on navigation and manual refresh.
type EventNotifier struct {
	redisClient *redis.Client
	hub         Broadcaster
	log         *logrus.Logger

	// onEvent is an optional hook invoked for every received event, used to
	// invalidate cached day stats.
	onEvent func(BookingEvent)

	pubsub *redis.PubSub
	wg     sync.WaitGroup
}

func NewEventNotifier(redisClient *redis.Client, hub Broadcaster, log *logrus.Logger) *EventNotifier {
	return &EventNotifier{
		redisClient: redisClient,
		hub:         hub,
		log:         log,
	}
}

// SetOnEvent registers a hook called for every event received from the
// channel. Must be called before Run.
func (n *EventNotifier) SetOnEvent(fn func(BookingEvent)) {
	n.onEvent = fn
}

// Publish sends one event to the booking events channel. Failures are
// logged, not propagated: the mutation already committed and must not be
// rolled back over a notification problem.
func (n *EventNotifier) Publish(ctx context.Context, event BookingEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Warnf("Failed to marshal booking event %s: %+v", event.BookingID, err)
		return
	}
	if err := n.redisClient.Publish(ctx, BookingEventsChannel, payload).Err(); err != nil {
		n.log.Warnf("Failed to publish booking event %s: %+v", event.BookingID, err)
	}
}

// Run subscribes to the booking events channel and forwards each event to
// the local websocket hub. Blocks until Stop is called or the context ends.
func (n *EventNotifier) Run(ctx context.Context) {
	n.pubsub = n.redisClient.Subscribe(ctx, BookingEventsChannel)
	ch := n.pubsub.Channel()

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		for msg := range ch {
			var event BookingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.log.Warnf("Dropping malformed booking event: %+v", err)
				continue
			}
			if n.onEvent != nil {
				n.onEvent(event)
			}
			n.hub.Broadcast(event.Topic(), []byte(msg.Payload))
		}
	}()
}

// Stop closes the subscription and waits for the forwarding goroutine.
func (n *EventNotifier) Stop() {
	if n.pubsub != nil {
		n.pubsub.Close()
	}
	n.wg.Wait()
}
