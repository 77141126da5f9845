//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/s21platform/dialog-service/internal/model"
)

type DBRepo interface {
	SaveMessage(ctx context.Context, message *model.Message) error
	SaveAttachment(ctx context.Context, attachment *model.Attachment) error
	GetAttachment(ctx context.Context, key string) (*model.Attachment, error)
	GetConversation(ctx context.Context, userA, userB string) (*model.MessageList, error)
	GetUsersInfo(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.UserInfo, error)
	AddNewUser(ctx context.Context, userInfo *model.UserInfo) error
	ListContacts(ctx context.Context, excludeID string) (*model.UserInfoList, error)
}

type UserClient interface {
	GetUserInfoByUUID(ctx context.Context, userUUID string) (*model.UserInfo, error)
}

type UserCache interface {
	GetUserInfo(ctx context.Context, userID string) (*model.UserInfo, error)
	SetUserInfo(ctx context.Context, info model.UserInfo) error
}

type Broker interface {
	Publish(ctx context.Context, userID string, msg model.DecoratedMessage) error
}

type AttachmentStore interface {
	Save(r io.Reader) (string, int64, error)
	Open(key string) (io.ReadCloser, error)
	Exists(key string) bool
}

type Validator interface {
	ValidateSendMessage(receiverID, text string, hasAttachment bool) error
	ValidateAttachmentKey(key string) error
}
