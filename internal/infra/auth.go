package infra

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/config"
	"github.com/s21platform/dialog-service/internal/model"
)

type SessionValidator interface {
	ValidateSessionToken(tokenString string) (*model.SessionClaims, error)
}

// AuthInterceptorHTTP resolves the caller identity from the Bearer session
// token and stores it under config.KeyUUID. Requests without a valid token
// never reach the handlers.
func AuthInterceptorHTTP(next http.Handler, validator SessionValidator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logger_lib.FromContext(r.Context(), config.KeyLogger)

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			logger.Warn("rejected request without bearer token")
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := validator.ValidateSessionToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Warn(fmt.Sprintf("rejected request with invalid session token: %v", err))
			http.Error(w, "invalid session token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), config.KeyUUID, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
