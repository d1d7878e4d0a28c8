package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/sgrhook/internal/verify"
)

// ErrMissingPublicKey is returned when serving without DISCORD_PUBLIC_KEY.
var ErrMissingPublicKey = errors.New("DISCORD_PUBLIC_KEY is required to serve webhooks")

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken     string        `env:"DISCORD_TOKEN,notEmpty"`
	ApplicationID    string        `env:"DISCORD_APPLICATION_ID,notEmpty"`
	PublicKey        string        `env:"DISCORD_PUBLIC_KEY"`
	ListenAddress    string        `env:"LISTEN_ADDRESS" envDefault:":8080"`
	InteractionsPath string        `env:"INTERACTIONS_PATH" envDefault:"/"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing or malformed. The public
// key is only checked when set; serving requires it, see RequirePublicKey.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if _, err := snowflake.Parse(cfg.ApplicationID); err != nil {
		return nil, fmt.Errorf("invalid DISCORD_APPLICATION_ID: %w", err)
	}
	if cfg.PublicKey != "" {
		if _, err := verify.ParsePublicKey(cfg.PublicKey); err != nil {
			return nil, fmt.Errorf("invalid DISCORD_PUBLIC_KEY: %w", err)
		}
	}

	return cfg, nil
}

// RequirePublicKey reports an error unless a valid public key is configured.
func (c *Config) RequirePublicKey() error {
	if c.PublicKey == "" {
		return ErrMissingPublicKey
	}
	if _, err := verify.ParsePublicKey(c.PublicKey); err != nil {
		return fmt.Errorf("invalid DISCORD_PUBLIC_KEY: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
