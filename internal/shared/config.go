package shared

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by [LoadConfig].
const (
	EnvClientID     = "OSU_CLIENT_ID"
	EnvClientSecret = "OSU_CLIENT_SECRET"
	EnvUserID       = "OSU_USER_ID"
	EnvMode         = "OSU_MODE"
	EnvLimit        = "OSU_LIMIT"
	EnvOutDir       = "OSU_OUT_DIR"
)

const (
	DefaultMode   = "osu"
	DefaultLimit  = 100
	DefaultOutDir = "."
)

// Config holds the application configuration, populated from environment
// variables (optionally via a .env file). Credentials may be left empty when
// the interactive entry point prompts for them instead.
type Config struct {
	ClientID     string // osu! OAuth client id
	ClientSecret string // osu! OAuth client secret
	UserID       int    // osu! numeric user id
	Mode         string // game mode: osu, taiko, fruits, mania
	Limit        int    // number of top plays to fetch
	OutDir       string // directory for downloaded archives
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded opportunistically; a missing file is not an
// error. Malformed numeric variables are reported as [ErrInvalidConfig].
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		Mode:         os.Getenv(EnvMode),
		OutDir:       os.Getenv(EnvOutDir),
	}

	if raw := os.Getenv(EnvUserID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, EnvUserID, raw)
		}
		cfg.UserID = id
	}

	if raw := os.Getenv(EnvLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, EnvLimit, raw)
		}
		cfg.Limit = limit
	}

	cfg.applyDefaults()
	return cfg, nil
}

// DefaultConfig returns a Config with defaults applied and no credentials.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
}

// HasCredentials reports whether both OAuth credentials are present.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
