package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server/storage"
	"github.com/iudanet/phonevault/internal/validation"
	"github.com/iudanet/phonevault/pkg/api"
)

// ContactsHandler обрабатывает CRUD запросы телефонной книги
// Каждый вызов storage получает id владельца из контекста запроса
type ContactsHandler struct {
	logger  *slog.Logger
	storage storage.ContactStorage
}

// NewContactsHandler создает новый handler для контактов
func NewContactsHandler(logger *slog.Logger, contactStorage storage.ContactStorage) *ContactsHandler {
	return &ContactsHandler{
		logger:  logger,
		storage: contactStorage,
	}
}

// List обрабатывает GET /api/contacts?search=
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	search := r.URL.Query().Get("search")

	contacts, err := h.storage.ListContacts(ctx, user.ID, search)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list contacts", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, contacts, http.StatusOK)
}

// Create обрабатывает POST /api/contacts
// Возвращает идентификатор созданной записи
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	var req api.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "Name and phone required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateContact(req.Name, req.Phone); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	contact := &models.Contact{
		UserID:    user.ID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}

	id, err := h.storage.CreateContact(ctx, contact)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create contact", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "contact created", slog.Int64("contact_id", id), slog.Int64("user_id", user.ID))

	sendJSON(h.logger, w, api.CreatedResponse{
		Message: "Contact added successfully",
		ID:      id,
	}, http.StatusOK)
}

// Update обрабатывает PUT /api/contacts/{id}
// Full-replace: address перезаписывается переданным значением
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "Contact not found", http.StatusNotFound)
		return
	}

	var req api.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "Name and phone required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateContact(req.Name, req.Phone); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	contact := &models.Contact{
		ID:      id,
		UserID:  user.ID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.storage.UpdateContact(ctx, contact); err != nil {
		if errors.Is(err, storage.ErrContactNotFound) {
			sendError(h.logger, w, "Contact not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update contact", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Contact updated successfully"}, http.StatusOK)
}

// Delete обрабатывает DELETE /api/contacts/{id}
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		sendError(h.logger, w, "Contact not found", http.StatusNotFound)
		return
	}

	if err := h.storage.DeleteContact(ctx, user.ID, id); err != nil {
		if errors.Is(err, storage.ErrContactNotFound) {
			sendError(h.logger, w, "Contact not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete contact", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Contact deleted successfully"}, http.StatusOK)
}

// Export обрабатывает GET /api/contacts/export
// Отдает все контакты пользователя как CSV файл (name, phone, address),
// отсортированные по имени
func (h *ContactsHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := GetUser(ctx)
	if !ok {
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	contacts, err := h.storage.ListContacts(ctx, user.ID, "")
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export contacts", slog.Any("error", err), slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=contacts.csv")

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "phone", "address"}); err != nil {
		h.logger.ErrorContext(ctx, "failed to write csv header", slog.Any("error", err))
		return
	}
	for _, contact := range contacts {
		if err := writer.Write([]string{contact.Name, contact.Phone, contact.Address}); err != nil {
			h.logger.ErrorContext(ctx, "failed to write csv row", slog.Any("error", err))
			return
		}
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		h.logger.ErrorContext(ctx, "failed to flush csv", slog.Any("error", err))
	}
}

// parseID извлекает числовой {id} из пути запроса
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
