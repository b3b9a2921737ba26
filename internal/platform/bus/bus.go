// Package bus provides the in-process event dispatcher used for
// zone membership notifications. Publication is fire-and-forget: a
// Publish never blocks the calling frame loop and a slow subscriber
// drops events rather than applying backpressure
package bus

import (
	"strings"
	"sync"

	"zonewatch/internal/platform/logger"
)

// Event is a published message on a topic
type Event struct {
	Topic   string
	Payload any
}

// Bus fans out events to pattern subscriptions
// the zero value is not usable; call New
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*subscription
	nextID int
	log    logger.Logger
	closed bool
}

type subscription struct {
	id      int
	pattern string
	ch      chan Event
}

// New constructs an empty Bus
func New(log logger.Logger) *Bus {
	return &Bus{
		subs: make(map[int]*subscription),
		log:  log,
	}
}

// Publish delivers the event to every matching subscription without blocking.
// Events to a subscriber with a full channel are dropped; the drop is logged
// and otherwise invisible to the publisher
func (b *Bus) Publish(topic string, payload any) {
	ev := Event{Topic: topic, Payload: payload}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, s := range b.subs {
		if !Match(s.pattern, topic) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			b.log.Warn().Str("topic", topic).Str("pattern", s.pattern).Msg("subscriber full, event dropped")
		}
	}
}

// Subscribe registers a pattern and returns the delivery channel plus a
// cancel func. buffer <= 0 gets a small default so a publisher burst
// does not immediately drop
func (b *Bus) Subscribe(pattern string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	s := &subscription{pattern: pattern, ch: make(chan Event, buffer)}

	b.mu.Lock()
	b.nextID++
	s.id = b.nextID
	b.subs[s.id] = s
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[s.id]; ok {
			delete(b.subs, s.id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return s.ch, cancel
}

// Close drops all subscriptions and closes their channels
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, s := range b.subs {
		delete(b.subs, id)
		close(s.ch)
	}
}

// Match reports whether a topic matches a subscription pattern.
// Patterns are slash-separated; "*" matches exactly one segment, so
// "*/zone/*/objects" covers every zone membership topic
func Match(pattern, topic string) bool {
	if pattern == topic {
		return true
	}
	ps := strings.Split(pattern, "/")
	ts := strings.Split(topic, "/")
	if len(ps) != len(ts) {
		return false
	}
	for i := range ps {
		if ps[i] == "*" {
			continue
		}
		if ps[i] != ts[i] {
			return false
		}
	}
	return true
}
