package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader заголовок с идентификатором запроса
const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware создает middleware, проставляющее уникальный
// X-Request-Id в каждый запрос и ответ. Переданный клиентом id сохраняется
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.New().String()
			}

			r.Header.Set(requestIDHeader, id)
			w.Header().Set(requestIDHeader, id)

			next.ServeHTTP(w, r)
		})
	}
}
