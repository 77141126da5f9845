package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/api"
	"github.com/s21platform/dialog-service/internal/config"
	"github.com/s21platform/dialog-service/internal/service"
)

type Handler struct {
	service        MessageService
	jwtGenerator   JWTGenerator
	maxUploadBytes int64
}

func New(svc MessageService, jwtGenerator JWTGenerator, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        svc,
		jwtGenerator:   jwtGenerator,
		maxUploadBytes: maxUploadBytes,
	}
}

// AttachRoutes mounts the dialog API onto the router.
func AttachRoutes(router chi.Router, h *Handler) {
	router.Post("/api/dialog/messages", h.SendMessage)
	router.Get("/api/dialog/conversations/{user_id}/messages", h.GetConversation)
	router.Get("/api/dialog/attachments/{key}", h.DownloadAttachment)
	router.Get("/api/dialog/contacts", h.GetContacts)
	router.Get("/api/dialog/ws-token", h.GetConnectAccessToken)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SendMessage")

	senderID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get sender ID")
		h.writeError(w, "failed to get sender ID", http.StatusInternalServerError)
		return
	}

	// Ingress cap. The attachment store enforces its own limit as well,
	// the two are configured independently.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			logger.Error(fmt.Sprintf("upload exceeds ingress limit: %v", err))
			h.writeError(w, "payload too large", http.StatusRequestEntityTooLarge)
			return
		}
		logger.Error(fmt.Sprintf("failed to parse multipart form: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := service.SendInput{
		ReceiverID: r.FormValue("receiver_id"),
		Text:       r.FormValue("text"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close() //nolint:errcheck // .
		in.File = &service.Upload{Name: header.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile):
	default:
		logger.Error(fmt.Sprintf("failed to read file part: %v", err))
		h.writeError(w, "invalid file part", http.StatusBadRequest)
		return
	}

	message, err := h.service.SendMessage(r.Context(), senderID, in)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to send message: %v", err))
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, message, http.StatusCreated)
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConversation")

	requesterID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get requester id")
		h.writeError(w, "failed to get requester id", http.StatusInternalServerError)
		return
	}

	otherID := chi.URLParam(r, "user_id")

	messages, err := h.service.GetConversation(r.Context(), requesterID, otherID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get conversation: %v", err))
		h.writeServiceError(w, err)
		return
	}

	response := api.GetConversationResponse{
		Messages: messages,
	}

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DownloadAttachment")

	key := chi.URLParam(r, "key")

	attach, blob, err := h.service.OpenAttachment(r.Context(), key)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to open attachment: %v", err))
		h.writeServiceError(w, err)
		return
	}
	defer blob.Close() //nolint:errcheck // .

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attach.OriginalName))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", attach.SizeBytes))

	if _, err := io.Copy(w, blob); err != nil {
		logger.Error(fmt.Sprintf("failed to stream attachment %s: %v", key, err))
	}
}

func (h *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetContacts")

	requesterID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get requester id")
		h.writeError(w, "failed to get requester id", http.StatusInternalServerError)
		return
	}

	contacts, err := h.service.ListContacts(r.Context(), requesterID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to list contacts: %v", err))
		h.writeServiceError(w, err)
		return
	}

	response := api.GetContactsResponse{
		Contacts: *contacts,
	}

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) GetConnectAccessToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConnectAccessToken")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtGenerator.GenerateConnectToken(userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate access token: %v", err))
		h.writeError(w, fmt.Sprintf("failed to generate access token: %v", err), http.StatusInternalServerError)
		return
	}

	response := api.GetConnectAccessTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}

	h.writeJSON(w, response, http.StatusOK)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		h.writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		h.writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrPayloadTooLarge):
		h.writeError(w, err.Error(), http.StatusRequestEntityTooLarge)
	default:
		h.writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Error{Error: message})
}
