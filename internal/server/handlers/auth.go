package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/phonevault/internal/crypto"
	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server/storage"
	"github.com/iudanet/phonevault/internal/validation"
	"github.com/iudanet/phonevault/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
	}
}

// Register обрабатывает POST /api/register
// Регистрация нового пользователя: хеширует пароль, сохраняет запись
// и сразу выдает bearer token
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "Username and password required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCredentials(req.Username, req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Пароль хранится только как bcrypt хеш
	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	userID, err := h.userStorage.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			sendError(h.logger, w, "Username already exists", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("username", req.Username),
		slog.Int64("user_id", userID))

	sendJSON(h.logger, w, api.AuthResponse{
		Message:  "Registration successful",
		Token:    token,
		Username: req.Username,
	}, http.StatusOK)
}

// Login обрабатывает POST /api/login
// Неизвестный username и неверный пароль неразличимы для клиента,
// чтобы не допускать enumeration пользователей
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			sendError(h.logger, w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username))
		sendError(h.logger, w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	sendJSON(h.logger, w, api.AuthResponse{
		Message:  "Login successful",
		Token:    token,
		Username: user.Username,
	}, http.StatusOK)
}

// Logout обрабатывает POST /api/logout
// Токены stateless и не отзываются: logout это подтверждение для клиента,
// который сам удаляет токен. Токен остается валидным до истечения срока
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, api.MessageResponse{Message: "Logged out"}, http.StatusOK)
}

// CurrentUser обрабатывает GET /api/current_user
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUser(r.Context())
	if !ok {
		h.logger.Error("user not found in context")
		sendError(h.logger, w, "Invalid token", http.StatusUnauthorized)
		return
	}

	sendJSON(h.logger, w, api.CurrentUserResponse{Username: user.Username}, http.StatusOK)
}
