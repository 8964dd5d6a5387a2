package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"github.com/Wang-tianhao/shortlived-token-go/jwtauth"
)

// Config holds the service configuration read from the environment.
type Config struct {
	// Server Configuration
	Server ServerConfig

	// Token Configuration
	Token TokenConfig

	// Logger Configuration
	Logger LoggerConfig
}

// ServerConfig is the configuration for the HTTP and gRPC listeners
type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`
}

// TokenConfig is the configuration for short-lived tokens
type TokenConfig struct {
	SecretKey     string        `env:"TOKEN_SECRET_KEY,required"`
	TTL           time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	Issuer        string        `env:"TOKEN_ISSUER"`
	Audience      string        `env:"TOKEN_AUDIENCE"`
	ClockSkew     time.Duration `env:"TOKEN_CLOCK_SKEW" envDefault:"0s"`
	HeaderEnabled bool          `env:"TOKEN_HEADER_ENABLED" envDefault:"true"`
	QueryEnabled  bool          `env:"TOKEN_QUERY_ENABLED" envDefault:"true"`
	PreferQuery   bool          `env:"TOKEN_PREFER_QUERY" envDefault:"false"`
	Cookie        string        `env:"TOKEN_COOKIE"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the optional dotenv files and then the environment.
// Variables already set in the environment take precedence over dotenv files.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Token.SecretKey) < 32 {
		return fmt.Errorf("TOKEN_SECRET_KEY must be at least 32 characters")
	}
	if cfg.Token.TTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if !cfg.Token.HeaderEnabled && !cfg.Token.QueryEnabled && cfg.Token.Cookie == "" {
		return fmt.Errorf("at least one token source must be enabled")
	}
	return nil
}

// CodecOptions translates the token configuration into codec options.
func (c *Config) CodecOptions(logger *slog.Logger) []jwtauth.ConfigOption {
	return []jwtauth.ConfigOption{
		jwtauth.WithSecret([]byte(c.Token.SecretKey)),
		jwtauth.WithTTL(c.Token.TTL),
		jwtauth.WithIssuer(c.Token.Issuer),
		jwtauth.WithAudience(c.Token.Audience),
		jwtauth.WithClockSkew(c.Token.ClockSkew),
		jwtauth.WithLogger(logger),
	}
}

// ExtractorOptions translates the token source configuration into extractor options.
func (c *Config) ExtractorOptions() []jwtauth.ExtractorOption {
	opts := []jwtauth.ExtractorOption{
		jwtauth.WithHeader(c.Token.HeaderEnabled),
		jwtauth.WithQuery(c.Token.QueryEnabled),
	}
	if c.Token.PreferQuery {
		opts = append(opts, jwtauth.PreferQuery())
	}
	if c.Token.Cookie != "" {
		opts = append(opts, jwtauth.WithCookie(c.Token.Cookie))
	}
	return opts
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Logger.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
