package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server/storage"
	"github.com/iudanet/phonevault/internal/validation"
	"github.com/iudanet/phonevault/pkg/api"
)

// SecretsHandler обрабатывает CRUD запросы секретов
// List отдает только безопасную проекцию, полная запись доступна через Get
type SecretsHandler struct {
	logger  *slog.Logger
	storage storage.SecretStorage
}

// NewSecretsHandler создает новый handler для секретов
func NewSecretsHandler(logger *slog.Logger, secretStorage storage.SecretStorage) *SecretsHandler {
	return &SecretsHandler{
		logger:  logger,
		storage: secretStorage,
	}
}

// List обрабатывает GET /api/secrets?search=&category=
// Ответ никогда не содержит password, api_key и notes
func (h *SecretsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	secrets, err := h.storage.ListSecrets(ctx, user.ID, search, category)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list secrets", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, secrets, http.StatusOK)
}

// Get обрабатывает GET /api/secrets/{id}
// Возвращает полную запись, включая sensitive поля
func (h *SecretsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "Secret not found", http.StatusNotFound)
		return
	}

	secret, err := h.storage.GetSecret(ctx, user.ID, id)
	if err != nil {
		if errors.Is(err, storage.ErrSecretNotFound) {
			sendError(h.logger, w, "Secret not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get secret", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, secret, http.StatusOK)
}

// Create обрабатывает POST /api/secrets
func (h *SecretsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var req api.SecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "Title is required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateSecret(req.Title); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	secret := &models.Secret{
		UserID:    user.ID,
		Title:     req.Title,
		Category:  validation.NormalizeCategory(req.Category),
		Username:  req.Username,
		Password:  req.Password,
		APIKey:    req.APIKey,
		URL:       req.URL,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := h.storage.CreateSecret(ctx, secret)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create secret", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "secret created", slog.Int64("secret_id", id), slog.Int64("user_id", user.ID))

	sendJSON(h.logger, w, api.CreatedResponse{
		Message: "Secret added successfully",
		ID:      id,
	}, http.StatusOK)
}

// Update обрабатывает PUT /api/secrets/{id}
// Full-replace: все опциональные поля перезаписываются переданными значениями
func (h *SecretsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "Secret not found", http.StatusNotFound)
		return
	}

	var req api.SecretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "Title is required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateSecret(req.Title); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	secret := &models.Secret{
		ID:        id,
		UserID:    user.ID,
		Title:     req.Title,
		Category:  validation.NormalizeCategory(req.Category),
		Username:  req.Username,
		Password:  req.Password,
		APIKey:    req.APIKey,
		URL:       req.URL,
		Notes:     req.Notes,
		UpdatedAt: time.Now(),
	}

	if err := h.storage.UpdateSecret(ctx, secret); err != nil {
		if errors.Is(err, storage.ErrSecretNotFound) {
			sendError(h.logger, w, "Secret not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update secret", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Secret updated successfully"}, http.StatusOK)
}

// Delete обрабатывает DELETE /api/secrets/{id}
func (h *SecretsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "Secret not found", http.StatusNotFound)
		return
	}

	if err := h.storage.DeleteSecret(ctx, user.ID, id); err != nil {
		if errors.Is(err, storage.ErrSecretNotFound) {
			sendError(h.logger, w, "Secret not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete secret", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Secret deleted successfully"}, http.StatusOK)
}
