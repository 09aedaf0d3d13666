package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/phonevault/internal/config"
	"github.com/iudanet/phonevault/internal/crypto"
	"github.com/iudanet/phonevault/internal/models"
	"github.com/iudanet/phonevault/internal/server"
	"github.com/iudanet/phonevault/internal/server/storage"
	"github.com/iudanet/phonevault/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "-version" {
		printVersion()
		os.Exit(0)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	if cfg.SecretGenerated {
		logger.Warn("SECRET_KEY is not set, generated a random process-local secret; " +
			"issued tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище обязательно для корректности: ошибка открытия или миграции
	// прерывает запуск, а не логируется с продолжением
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if cfg.BootstrapAdmin {
		if err := bootstrapAdmin(ctx, logger, store); err != nil {
			return fmt.Errorf("failed to bootstrap admin user: %w", err)
		}
	}

	logger.Info("starting phonevault server",
		"version", Version,
		"addr", cfg.Address,
		"db", cfg.DatabasePath,
		"token_ttl", cfg.TokenTTL.String(),
	)

	srv := server.New(logger, cfg, store)
	return srv.Run(ctx)
}

// bootstrapAdmin создает пользователя admin/admin если его еще нет.
// Включается явно флагом -bootstrap-admin, только для локальной разработки
func bootstrapAdmin(ctx context.Context, logger *slog.Logger, store *sqlite.Storage) error {
	_, err := store.GetUserByUsername(ctx, "admin")
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return err
	}

	hash, err := crypto.HashPassword("admin")
	if err != nil {
		return err
	}

	if _, err := store.CreateUser(ctx, &models.User{
		Username:     "admin",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}); err != nil {
		return err
	}

	logger.Warn("default admin user created (username: admin, password: admin); change the password")
	return nil
}

// newLogger создает slog логгер с уровнем из конфигурации
func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}

func printVersion() {
	fmt.Printf("PhoneVault Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
