package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/phonevault/internal/config"
	"github.com/iudanet/phonevault/internal/server/handlers"
	"github.com/iudanet/phonevault/internal/server/middleware"
	"github.com/iudanet/phonevault/internal/server/storage"
)

// Storage объединяет все интерфейсы хранилища, нужные серверу
type Storage interface {
	storage.UserStorage
	storage.ContactStorage
	storage.SecretStorage
	handlers.Pinger
}

// defaultAllowedOrigins адреса фронтенда для CORS
var defaultAllowedOrigins = []string{
	"http://localhost",
	"http://localhost:80",
	"http://127.0.0.1:80",
}

const (
	// loginRateLimit запросов на register/login за loginRateWindow с одного IP
	loginRateLimit  = 10
	loginRateWindow = time.Minute

	shutdownTimeout = 10 * time.Second
)

// Server представляет HTTP сервер приложения
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	limiter    *middleware.RateLimiter
}

// New собирает сервер: handlers, маршруты и middleware цепочку
func New(logger *slog.Logger, cfg *config.Config, store Storage) *Server {
	jwtConfig := handlers.JWTConfig{
		Secret:   []byte(cfg.SecretKey),
		TokenTTL: cfg.TokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	contactsHandler := handlers.NewContactsHandler(logger, store)
	secretsHandler := handlers.NewSecretsHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger, store)

	auth := middleware.AuthMiddleware(logger, jwtConfig, store)
	limiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow, logger)

	mux := http.NewServeMux()

	// Аутентификация
	mux.Handle("POST /api/register", limiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/login", limiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.Handle("GET /api/current_user", auth(http.HandlerFunc(authHandler.CurrentUser)))

	// Контакты
	mux.Handle("GET /api/contacts", auth(http.HandlerFunc(contactsHandler.List)))
	mux.Handle("POST /api/contacts", auth(http.HandlerFunc(contactsHandler.Create)))
	mux.Handle("PUT /api/contacts/{id}", auth(http.HandlerFunc(contactsHandler.Update)))
	mux.Handle("DELETE /api/contacts/{id}", auth(http.HandlerFunc(contactsHandler.Delete)))
	mux.Handle("GET /api/contacts/export", auth(http.HandlerFunc(contactsHandler.Export)))

	// Секреты
	mux.Handle("GET /api/secrets", auth(http.HandlerFunc(secretsHandler.List)))
	mux.Handle("GET /api/secrets/{id}", auth(http.HandlerFunc(secretsHandler.Get)))
	mux.Handle("POST /api/secrets", auth(http.HandlerFunc(secretsHandler.Create)))
	mux.Handle("PUT /api/secrets/{id}", auth(http.HandlerFunc(secretsHandler.Update)))
	mux.Handle("DELETE /api/secrets/{id}", auth(http.HandlerFunc(secretsHandler.Delete)))

	// Health check без аутентификации
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Общая middleware цепочка, снаружи внутрь:
	// recovery -> request id -> logging -> CORS -> router
	var handler http.Handler = mux
	handler = middleware.CORSMiddleware(defaultAllowedOrigins)(handler)
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		limiter: limiter,
	}
}

// Handler возвращает корневой handler сервера (для httptest)
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и блокируется до отмены контекста,
// затем выполняет graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	s.limiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
