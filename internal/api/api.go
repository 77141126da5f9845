// Package api holds the wire contract of the HTTP surface.
package api

import "github.com/s21platform/dialog-service/internal/model"

type Error struct {
	Error string `json:"error"`
}

type GetConversationResponse struct {
	Messages model.DecoratedMessageList `json:"messages"`
}

type GetContactsResponse struct {
	Contacts model.UserInfoList `json:"contacts"`
}

type GetConnectAccessTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
