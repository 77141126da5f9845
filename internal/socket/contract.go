//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package socket

import (
	"context"

	"github.com/s21platform/dialog-service/internal/channel"
	"github.com/s21platform/dialog-service/internal/model"
	"github.com/s21platform/dialog-service/internal/service"
)

type MessageSender interface {
	SendMessage(ctx context.Context, senderID string, in service.SendInput) (*model.DecoratedMessage, error)
}

type Broker interface {
	Subscribe(userID string, handler channel.Handler) (channel.Subscription, error)
}

type TokenValidator interface {
	ValidateConnectToken(tokenString string) (*model.SocketConnectClaims, error)
}
