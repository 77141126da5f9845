package model

import "github.com/golang-jwt/jwt/v5"

// SocketConnectClaims authorize a websocket connection. The gateway trusts
// only the subject of a verified token as the connection's identity, never
// a client-supplied field.
type SocketConnectClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"user_id"`
}

type SessionClaims struct {
	jwt.RegisteredClaims
}
