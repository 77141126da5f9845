// Package service is the message ingestion core. The HTTP handler and the
// socket gateway are thin ingresses over SendMessage, so both paths leave
// the store and the delivery channel in the same state: one row, one
// decorated record fanned out to both participants.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/attachment"
	"github.com/s21platform/dialog-service/internal/config"
	"github.com/s21platform/dialog-service/internal/model"
	"github.com/s21platform/dialog-service/internal/pkg/tx"
)

type Service struct {
	repository DBRepo
	userClient UserClient
	userCache  UserCache
	broker     Broker
	store      AttachmentStore
	validator  Validator
}

func New(
	repo DBRepo,
	userClient UserClient,
	userCache UserCache,
	broker Broker,
	store AttachmentStore,
	validator Validator,
) *Service {
	return &Service{
		repository: repo,
		userClient: userClient,
		userCache:  userCache,
		broker:     broker,
		store:      store,
		validator:  validator,
	}
}

// Upload is a raw file arriving with the HTTP send.
type Upload struct {
	Name    string
	Content io.Reader
}

// SendInput carries one logical send. The HTTP path supplies File; the
// socket path may reference an already uploaded blob through AttachmentKey.
type SendInput struct {
	ReceiverID    string
	Text          string
	File          *Upload
	AttachmentKey *string
}

func (s *Service) SendMessage(ctx context.Context, senderID string, in SendInput) (*model.DecoratedMessage, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)

	hasAttachment := in.File != nil || in.AttachmentKey != nil
	if err := s.validator.ValidateSendMessage(in.ReceiverID, in.Text, hasAttachment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	senderUUID, err := uuid.Parse(senderID)
	if err != nil {
		return nil, fmt.Errorf("sender id is not a valid uuid: %v", err)
	}
	receiverUUID := uuid.MustParse(in.ReceiverID)

	users, err := s.resolveUsers(ctx, senderUUID, receiverUUID)
	if err != nil {
		return nil, err
	}
	if _, ok := users[receiverUUID]; !ok {
		return nil, fmt.Errorf("%w: receiver %s is unknown", ErrValidation, in.ReceiverID)
	}

	attach, isNewAttachment, err := s.resolveAttachment(ctx, in)
	if err != nil {
		return nil, err
	}

	message := model.Message{
		ID:         uuid.New(),
		SenderID:   senderUUID,
		ReceiverID: receiverUUID,
		Kind:       model.TextMessageKind,
		Text:       in.Text,
		SentAt:     time.Now().UTC(),
	}
	if attach != nil {
		message.Kind = model.FileMessageKind
		message.AttachmentKey = &attach.Key
		message.AttachmentName = &attach.OriginalName
	}

	err = tx.TxExecute(ctx, func(ctx context.Context) error {
		if isNewAttachment {
			if err := s.repository.SaveAttachment(ctx, attach); err != nil {
				return fmt.Errorf("failed to save attachment: %v", err)
			}
		}

		if err := s.repository.SaveMessage(ctx, &message); err != nil {
			return fmt.Errorf("failed to save message: %v", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	decorated := model.DecoratedMessage{
		Message:  message,
		Sender:   users[senderUUID],
		Receiver: users[receiverUUID],
	}

	// Fan-out lives here, after the record is durable. A failed publish
	// loses only the live echo, never the message: history serves it on
	// the next conversation open.
	if err := s.broker.Publish(ctx, receiverUUID.String(), decorated); err != nil {
		logger.Error(fmt.Sprintf("failed to publish message %s to receiver topic: %v", message.ID, err))
	}
	if senderUUID != receiverUUID {
		if err := s.broker.Publish(ctx, senderUUID.String(), decorated); err != nil {
			logger.Error(fmt.Sprintf("failed to publish message %s to sender topic: %v", message.ID, err))
		}
	}

	return &decorated, nil
}

func (s *Service) resolveAttachment(ctx context.Context, in SendInput) (*model.Attachment, bool, error) {
	switch {
	case in.File != nil:
		key, size, err := s.store.Save(in.File.Content)
		if err != nil {
			if errors.Is(err, attachment.ErrTooLarge) {
				return nil, false, fmt.Errorf("%w: %s", ErrPayloadTooLarge, in.File.Name)
			}
			return nil, false, fmt.Errorf("failed to store attachment: %v", err)
		}

		return &model.Attachment{
			Key:          key,
			OriginalName: in.File.Name,
			SizeBytes:    size,
			CreatedAt:    time.Now().UTC(),
		}, true, nil

	case in.AttachmentKey != nil:
		if err := s.validator.ValidateAttachmentKey(*in.AttachmentKey); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrValidation, err)
		}

		attach, err := s.repository.GetAttachment(ctx, *in.AttachmentKey)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, fmt.Errorf("%w: attachment %s", ErrNotFound, *in.AttachmentKey)
			}
			return nil, false, fmt.Errorf("failed to resolve attachment: %v", err)
		}

		if !s.store.Exists(attach.Key) {
			return nil, false, fmt.Errorf("%w: attachment %s has no blob", ErrNotFound, attach.Key)
		}

		return attach, false, nil

	default:
		return nil, false, nil
	}
}

func (s *Service) GetConversation(ctx context.Context, requesterID, otherID string) (model.DecoratedMessageList, error) {
	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, fmt.Errorf("requester id is not a valid uuid: %v", err)
	}

	otherUUID, err := uuid.Parse(otherID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id is not a valid uuid", ErrValidation)
	}

	messages, err := s.repository.GetConversation(ctx, requesterID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %v", err)
	}

	users, err := s.resolveUsers(ctx, requesterUUID, otherUUID)
	if err != nil {
		return nil, err
	}

	decorated := make(model.DecoratedMessageList, 0, len(*messages))
	for _, message := range *messages {
		decorated = append(decorated, model.DecoratedMessage{
			Message:  message,
			Sender:   users[message.SenderID],
			Receiver: users[message.ReceiverID],
		})
	}

	return decorated, nil
}

func (s *Service) OpenAttachment(ctx context.Context, key string) (*model.Attachment, io.ReadCloser, error) {
	if err := s.validator.ValidateAttachmentKey(key); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	attach, err := s.repository.GetAttachment(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: attachment %s", ErrNotFound, key)
		}
		return nil, nil, fmt.Errorf("failed to resolve attachment: %v", err)
	}

	blob, err := s.store.Open(attach.Key)
	if err != nil {
		if errors.Is(err, attachment.ErrNotFound) || errors.Is(err, attachment.ErrInvalidKey) {
			return nil, nil, fmt.Errorf("%w: attachment %s", ErrNotFound, key)
		}
		return nil, nil, fmt.Errorf("failed to open attachment: %v", err)
	}

	return attach, blob, nil
}

func (s *Service) ListContacts(ctx context.Context, requesterID string) (*model.UserInfoList, error) {
	contacts, err := s.repository.ListContacts(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %v", err)
	}

	return contacts, nil
}

// resolveUsers decorates ids through cache, local directory and the user
// service, in that order. Profiles fetched remotely are written back to
// both. Ids nobody knows are absent from the result.
func (s *Service) resolveUsers(ctx context.Context, userIDs ...uuid.UUID) (map[uuid.UUID]model.UserInfo, error) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)

	result := make(map[uuid.UUID]model.UserInfo, len(userIDs))
	seen := make(map[uuid.UUID]struct{}, len(userIDs))

	var missing []uuid.UUID
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		cached, err := s.userCache.GetUserInfo(ctx, id.String())
		if err != nil {
			logger.Warn(fmt.Sprintf("user cache read failed for %s: %v", id, err))
		}
		if cached != nil {
			result[id] = *cached
			continue
		}

		missing = append(missing, id)
	}

	if len(missing) > 0 {
		known, err := s.repository.GetUsersInfo(ctx, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve users: %v", err)
		}

		remaining := missing[:0]
		for _, id := range missing {
			info, ok := known[id]
			if !ok {
				remaining = append(remaining, id)
				continue
			}

			result[id] = info
			if err := s.userCache.SetUserInfo(ctx, info); err != nil {
				logger.Warn(fmt.Sprintf("user cache write failed for %s: %v", id, err))
			}
		}
		missing = remaining
	}

	for _, id := range missing {
		info, err := s.userClient.GetUserInfoByUUID(ctx, id.String())
		if err != nil {
			logger.Warn(fmt.Sprintf("failed to fetch user %s from user service: %v", id, err))
			continue
		}

		if err := s.repository.AddNewUser(ctx, info); err != nil {
			logger.Warn(fmt.Sprintf("failed to add user %s to directory: %v", id, err))
		}
		if err := s.userCache.SetUserInfo(ctx, *info); err != nil {
			logger.Warn(fmt.Sprintf("user cache write failed for %s: %v", id, err))
		}

		result[id] = *info
	}

	return result, nil
}
