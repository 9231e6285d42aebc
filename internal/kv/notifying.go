package kv

import (
	"context"

	"github.com/zjrosen/weekly/internal/pubsub"
)

// Change describes a successful write.
type Change struct {
	Key     string
	Value   string
	Deleted bool
}

// Notifying publishes a Change on its broker after every successful write.
type Notifying struct {
	Storage
	broker *pubsub.Broker[Change]
}

var _ Storage = (*Notifying)(nil)

// NewNotifying wraps s. Call Close when done.
func NewNotifying(s Storage) *Notifying {
	return &Notifying{Storage: s, broker: pubsub.NewBroker[Change]()}
}

func (n *Notifying) Set(ctx context.Context, key, value string) error {
	if err := n.Storage.Set(ctx, key, value); err != nil {
		return err
	}
	n.broker.Publish(pubsub.UpdatedEvent, Change{Key: key, Value: value})
	return nil
}

func (n *Notifying) Delete(ctx context.Context, key string) error {
	if err := n.Storage.Delete(ctx, key); err != nil {
		return err
	}
	n.broker.Publish(pubsub.DeletedEvent, Change{Key: key, Deleted: true})
	return nil
}

// Broker exposes the change stream.
func (n *Notifying) Broker() *pubsub.Broker[Change] {
	return n.broker
}

// WatchKey subscribes to changes of a single key.
func (n *Notifying) WatchKey(ctx context.Context, key string) <-chan pubsub.Event[Change] {
	return n.broker.SubscribeMatching(ctx, func(e pubsub.Event[Change]) bool {
		return e.Payload.Key == key
	})
}

// Close shuts down the broker and all subscriptions.
func (n *Notifying) Close() {
	n.broker.Close()
}
