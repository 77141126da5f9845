//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"
	"io"

	"github.com/s21platform/dialog-service/internal/model"
	"github.com/s21platform/dialog-service/internal/service"
)

type MessageService interface {
	SendMessage(ctx context.Context, senderID string, in service.SendInput) (*model.DecoratedMessage, error)
	GetConversation(ctx context.Context, requesterID, otherID string) (model.DecoratedMessageList, error)
	OpenAttachment(ctx context.Context, key string) (*model.Attachment, io.ReadCloser, error)
	ListContacts(ctx context.Context, requesterID string) (*model.UserInfoList, error)
}

type JWTGenerator interface {
	GenerateConnectToken(userID string) (string, int64, error)
}
