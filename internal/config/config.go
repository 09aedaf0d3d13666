// Package config handles configuration for the server component,
// including defaults, environment variables and command-line flags.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the PhoneVault server.
// Собирается один раз при старте и передается явно, без глобального состояния.
type Config struct {
	Address        string        // адрес HTTP сервера, например ":5000"
	DatabasePath   string        // путь к файлу SQLite
	SecretKey      string        // HMAC секрет для подписи JWT (HS256)
	TokenTTL       time.Duration // срок действия bearer токена
	LogLevel       string        // debug | info | warn | error
	BootstrapAdmin bool          // создать дефолтного admin пользователя при старте

	// SecretGenerated выставляется когда секрет не был задан и был
	// сгенерирован случайно: все ранее выданные токены перестанут работать
	// после рестарта процесса
	SecretGenerated bool
}

// LoadDefaults populates Config with development defaults.
// Секрет по умолчанию отсутствует: фиксированный литерал дал бы
// предсказуемую подпись токенов
func (c *Config) LoadDefaults() {
	c.Address = ":5000"
	c.DatabasePath = "phonevault.db"
	c.SecretKey = ""
	c.TokenTTL = 7 * 24 * time.Hour
	c.LogLevel = "info"
	c.BootstrapAdmin = false
}

// Load builds a Config by applying defaults, then overlaying values
// from environment variables and finally from command-line flags.
// Если секрет так и не задан, генерируется случайный process-local секрет.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := cfg.parseEnv(); err != nil {
		return nil, err
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		secret, err := generateSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate secret key: %w", err)
		}
		cfg.SecretKey = secret
		cfg.SecretGenerated = true
	}

	return cfg, nil
}

// parseEnv overlays values from environment variables
func (c *Config) parseEnv() error {
	if v := os.Getenv("ADDRESS"); v != "" {
		c.Address = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		c.TokenTTL = ttl
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BOOTSTRAP_ADMIN"); v == "true" || v == "1" {
		c.BootstrapAdmin = true
	}
	return nil
}

// parseFlags overlays values from command-line flags
func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("phonevault-server", flag.ContinueOnError)

	fs.StringVar(&c.Address, "a", c.Address, "address and port to run server")
	fs.StringVar(&c.DatabasePath, "d", c.DatabasePath, "path to SQLite database file")
	fs.StringVar(&c.SecretKey, "s", c.SecretKey, "JWT signing secret")
	fs.DurationVar(&c.TokenTTL, "t", c.TokenTTL, "token validity duration")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&c.BootstrapAdmin, "bootstrap-admin", c.BootstrapAdmin, "create default admin user on startup")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	return nil
}

// generateSecret создает случайный 32-байтный секрет
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
