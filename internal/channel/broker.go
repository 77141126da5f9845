// Package channel is the delivery fan-out: one publish/subscribe topic per
// user id. Within a topic, records are delivered in publish order. A topic
// with no subscribers drops the record silently, missed records are
// recovered through history on the next connect.
package channel

import (
	"context"

	"github.com/s21platform/dialog-service/internal/model"
)

type Handler func(msg model.DecoratedMessage)

type Subscription interface {
	Close() error
}

// Broker is the capability contract the transport is decoupled from: the
// in-process Hub serves a single instance, NatsBroker shares topics across
// instances.
type Broker interface {
	Publish(ctx context.Context, userID string, msg model.DecoratedMessage) error
	Subscribe(userID string, handler Handler) (Subscription, error)
}
