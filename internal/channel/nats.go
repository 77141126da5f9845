package channel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/model"
)

const subjectPrefix = "dialog.user"

// NatsBroker routes topics through a NATS cluster so several service
// instances can share the fan-out. Core NATS fits the channel contract:
// there is no offline queue and no redelivery.
type NatsBroker struct {
	nc     *nats.Conn
	logger logger_lib.LoggerInterface
}

func NewNatsBroker(url string, logger logger_lib.LoggerInterface) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NatsBroker{nc: nc, logger: logger}, nil
}

func (b *NatsBroker) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}

func subject(userID string) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, userID)
}

func (b *NatsBroker) Publish(_ context.Context, userID string, msg model.DecoratedMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := b.nc.Publish(subject(userID), data); err != nil {
		return fmt.Errorf("failed to publish to subject '%s': %w", subject(userID), err)
	}

	return nil
}

func (b *NatsBroker) Subscribe(userID string, handler Handler) (Subscription, error) {
	sub, err := b.nc.Subscribe(subject(userID), func(natsMsg *nats.Msg) {
		var msg model.DecoratedMessage
		if err := json.Unmarshal(natsMsg.Data, &msg); err != nil {
			b.logger.Error(fmt.Sprintf("failed to unmarshal message from subject '%s': %v", natsMsg.Subject, err))
			return
		}
		handler(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject '%s': %w", subject(userID), err)
	}

	return &natsSubscription{sub: sub}, nil
}

type natsSubscription struct {
	sub *nats.Subscription
}

func (s *natsSubscription) Close() error {
	return s.sub.Unsubscribe()
}
