package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/phonevault/internal/server/handlers"
	"github.com/iudanet/phonevault/internal/server/storage"
	"github.com/iudanet/phonevault/pkg/api"
)

// AuthMiddleware создает middleware для проверки bearer токена.
// Валидный токен разрешается в пользователя через storage: claim мог
// пережить удаление пользователя, такой токен отклоняется.
// Разрешенный пользователь кладется в контекст запроса
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig, users storage.UserStorage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header", "path", r.URL.Path)
				jsonError(logger, w, "Token is missing", http.StatusUnauthorized)
				return
			}

			// Префикс "Bearer " опционален
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// Валидируем токен
			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				if errors.Is(err, handlers.ErrTokenExpired) {
					logger.Warn("expired access token", "path", r.URL.Path)
					jsonError(logger, w, "Token has expired", http.StatusUnauthorized)
					return
				}
				logger.Warn("invalid access token", "error", err, "path", r.URL.Path)
				jsonError(logger, w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// Разрешаем claim в пользователя
			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, storage.ErrUserNotFound) {
					logger.Warn("token for deleted user", "user_id", claims.UserID)
					jsonError(logger, w, "User not found", http.StatusUnauthorized)
					return
				}
				logger.Error("failed to resolve user", "error", err, "user_id", claims.UserID)
				jsonError(logger, w, "Internal server error", http.StatusInternalServerError)
				return
			}

			logger.Debug("user authenticated", "user_id", user.ID, "username", user.Username)

			// Передаем запрос дальше с пользователем в контексте
			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), user)))
		})
	}
}

// jsonError отправляет ошибку в формате {"error": "<message>"}
func jsonError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: message}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
