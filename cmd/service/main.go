package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/attachment"
	"github.com/s21platform/dialog-service/internal/cache"
	"github.com/s21platform/dialog-service/internal/channel"
	"github.com/s21platform/dialog-service/internal/client/user"
	"github.com/s21platform/dialog-service/internal/config"
	"github.com/s21platform/dialog-service/internal/infra"
	"github.com/s21platform/dialog-service/internal/pkg/jwt"
	"github.com/s21platform/dialog-service/internal/pkg/tx"
	"github.com/s21platform/dialog-service/internal/pkg/validator"
	db "github.com/s21platform/dialog-service/internal/repository/postgres"
	"github.com/s21platform/dialog-service/internal/rest"
	"github.com/s21platform/dialog-service/internal/service"
	"github.com/s21platform/dialog-service/internal/socket"
)

func main() {
	cfg := config.MustLoad()
	logger := logger_lib.New(cfg.Logger.Host, cfg.Logger.Port, cfg.Service.Name, cfg.Platform.Env)

	dbRepo := db.New(cfg)
	defer dbRepo.Close()

	userCache := cache.New(cfg)
	defer userCache.Close()

	userClient := user.New(cfg)

	broker := newBroker(cfg, logger)

	store := attachment.NewStore(cfg.Attachment.Dir, cfg.Attachment.MaxUploadBytes)
	vldtr := validator.New()
	sessionJWT := jwt.New(cfg.Session.Secret)
	socketJWT := jwt.New(cfg.Socket.JWTSecret)

	dialogService := service.New(dbRepo, userClient, userCache, broker, store, vldtr)

	restHandler := rest.New(dialogService, socketJWT, cfg.Attachment.MaxUploadBytes)
	socketHandler := socket.New(dialogService, broker, socketJWT)

	router := chi.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return infra.LoggerHTTP(next, logger)
	})

	// The socket route authenticates with its own connect token, the rest
	// of the surface requires a session.
	router.Get("/ws", socketHandler.ServeWS)

	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return infra.AuthInterceptorHTTP(next, sessionJWT)
		})
		r.Use(func(next http.Handler) http.Handler {
			return tx.TxMiddlewareHTTP(dbRepo)(next)
		})

		rest.AttachRoutes(r, restHandler)
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Service.Port),
		Handler: router,
	}

	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("server error: %v", err))
	}
}

func newBroker(cfg *config.Config, logger logger_lib.LoggerInterface) channel.Broker {
	if cfg.Channel.Driver == "nats" {
		broker, err := channel.NewNatsBroker(cfg.Nats.URL, logger)
		if err != nil {
			logger.Error(fmt.Sprintf("failed to connect NATS, falling back to in-process delivery: %v", err))
			return channel.NewHub(logger)
		}
		return broker
	}

	return channel.NewHub(logger)
}
