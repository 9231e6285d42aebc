package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

type subscription[T any] struct {
	ch    chan Event[T]
	match func(Event[T]) bool
}

// Broker is a generic pub/sub event broker.
// Publish never blocks: a subscriber whose buffer is full misses the event.
type Broker[T any] struct {
	subs       map[chan Event[T]]subscription[T]
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
}

// NewBroker creates a new broker with the default buffer size (64).
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a new broker with a custom buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]subscription[T]),
		done:       make(chan struct{}),
		bufferSize: size,
	}
}

// Subscribe creates a new subscription channel receiving every event.
// The channel is automatically closed when ctx is cancelled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	return b.SubscribeMatching(ctx, nil)
}

// SubscribeMatching is like Subscribe but only delivers events for which
// match returns true. A nil match delivers everything.
func (b *Broker[T]) SubscribeMatching(ctx context.Context, match func(Event[T]) bool) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := subscription[T]{ch: make(chan Event[T], b.bufferSize), match: match}
	b.subs[sub.ch] = sub

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return
		default:
		}

		delete(b.subs, sub.ch)
		close(sub.ch)
	}()

	return sub.ch
}

// Publish sends an event to all matching subscribers.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for _, sub := range b.subs {
		if sub.match != nil && !sub.match(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Full - drop
		}
	}
}

// Close shuts down the broker and all subscriber channels. Safe to call twice.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return
	default:
	}

	close(b.done)
	for ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
