// Package user applies profile updates from the user topic to the local
// directory, so decoration keeps serving fresh names without a call to the
// user service.
package user

import (
	"context"
	"encoding/json"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/config"
)

type UpdateMessage struct {
	UserUUID string  `json:"uuid"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type Handle struct {
	repository DBRepo
	cache      UserCache
}

func New(repo DBRepo, cache UserCache) *Handle {
	return &Handle{
		repository: repo,
		cache:      cache,
	}
}

func (h *Handle) Handler(ctx context.Context, msg []byte) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("Handler")

	var update UpdateMessage
	if err := json.Unmarshal(msg, &update); err != nil {
		logger.Error(fmt.Sprintf("failed to unmarshal user update: %v", err))
		return
	}

	if update.UserUUID == "" {
		logger.Error("user update without uuid")
		return
	}

	if update.Name != nil {
		if err := h.repository.UpdateUserName(ctx, update.UserUUID, *update.Name); err != nil {
			logger.Error(fmt.Sprintf("failed to update name for user %s: %v", update.UserUUID, err))
			return
		}
	}

	if update.Email != nil {
		if err := h.repository.UpdateUserEmail(ctx, update.UserUUID, *update.Email); err != nil {
			logger.Error(fmt.Sprintf("failed to update email for user %s: %v", update.UserUUID, err))
			return
		}
	}

	if update.Name == nil && update.Email == nil {
		return
	}

	// Stale cache entries would undo the update for the TTL window.
	if err := h.cache.DropUserInfo(ctx, update.UserUUID); err != nil {
		logger.Warn(fmt.Sprintf("failed to drop cached info for user %s: %v", update.UserUUID, err))
	}
}
