package handlers

import (
	"context"

	"github.com/iudanet/phonevault/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

// userKey ключ для хранения аутентифицированного пользователя в контексте
const userKey contextKey = "user"

// WithUser возвращает контекст с аутентифицированным пользователем
// Используется auth middleware
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser извлекает аутентифицированного пользователя из контекста запроса.
// Handlers передают user.ID явно в каждый вызов storage:
// доступ к данным без идентификатора владельца структурно невозможен
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
