package bus

import (
	"log/slog"
	"sync"

	"github.com/exhibitkit/showroom/internal/dependencies/clock"
	"github.com/exhibitkit/showroom/internal/model"
)

// Handler receives events published on a topic
type Handler func(model.Event)

// Bus is the application-wide publish/subscribe channel. Dispatch is
// synchronous and in subscription order; publishing to a topic with no
// subscribers is a no-op. There is no payload buffering.
type Bus struct {
	clock  clock.Clock
	logger *slog.Logger

	mu     sync.Mutex
	nextID uint64
	topics map[model.EventType][]*entry
}

type entry struct {
	id      uint64
	handler Handler
}

// New creates an empty Bus
func New(clk clock.Clock, logger *slog.Logger) *Bus {
	return &Bus{
		clock:  clk,
		logger: logger.With(slog.String("component", "bus")),
		topics: make(map[model.EventType][]*entry),
	}
}

// Subscribe registers a handler on a topic and returns a scoped
// subscription handle. The handle's Close ties the subscription's
// lifetime to its owning component; closing twice is safe.
func (b *Bus) Subscribe(topic model.EventType, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	e := &entry{id: b.nextID, handler: h}
	b.topics[topic] = append(b.topics[topic], e)

	return &Subscription{bus: b, topic: topic, id: e.id}
}

// Publish builds an event from the topic and payload and dispatches it to
// all currently-subscribed handlers, in subscription order, on the calling
// goroutine. Handlers may subscribe or unsubscribe during dispatch; the
// iteration runs over a snapshot taken when Publish was called.
func (b *Bus) Publish(topic model.EventType, payload any) {
	b.mu.Lock()
	entries := b.topics[topic]
	snapshot := make([]*entry, len(entries))
	copy(snapshot, entries)
	b.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}

	evt := model.Event{
		Type:      topic,
		Timestamp: b.clock.Now(),
		Payload:   payload,
	}

	for _, e := range snapshot {
		e.handler(evt)
	}
}

// SubscriberCount returns the number of handlers on a topic
func (b *Bus) SubscriberCount(topic model.EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[topic])
}

func (b *Bus) unsubscribe(topic model.EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.topics[topic]
	for i, e := range entries {
		if e.id == id {
			b.topics[topic] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Subscription is a scoped handle to a single topic registration
type Subscription struct {
	bus   *Bus
	topic model.EventType
	id    uint64
	once  sync.Once
}

// Close removes the subscription from the bus. Safe to call multiple
// times and from inside a handler currently being dispatched.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.unsubscribe(s.topic, s.id)
	})
}

// CloseAll closes a group of subscriptions, for component teardown
func CloseAll(subs []*Subscription) {
	for _, s := range subs {
		s.Close()
	}
}
