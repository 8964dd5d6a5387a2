package jwtauth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTTL is the lifetime Issue gives a token when WithTTL is not used.
	DefaultTTL = time.Hour

	minSecretLength = 32
)

// Config holds immutable configuration for token encoding and validation
type Config struct {
	secret          []byte
	signingMethod   jwt.SigningMethod
	ttl             time.Duration
	issuer          string
	audience        string
	clockSkewLeeway time.Duration
	logger          *slog.Logger
	now             func() time.Time
}

// ConfigOption is a functional option for configuring the codec
type ConfigOption func(*Config) error

// NewConfig creates a new immutable configuration with the given options
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		signingMethod: jwt.SigningMethodHS256,
		ttl:           DefaultTTL,
		now:           time.Now,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewValidationError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	if len(cfg.secret) == 0 {
		return nil, NewValidationError(ErrConfigError, "a signing secret must be configured (use WithSecret)", nil)
	}

	return cfg, nil
}

// WithSecret sets the process-wide signing secret
func WithSecret(secret []byte) ConfigOption {
	return func(c *Config) error {
		if err := checkSecret(secret); err != nil {
			return err
		}
		c.secret = append([]byte(nil), secret...)
		return nil
	}
}

// WithSigningMethod selects the HMAC variant used to sign and accepted on decode
func WithSigningMethod(method jwt.SigningMethod) ConfigOption {
	return func(c *Config) error {
		if method == nil {
			return fmt.Errorf("signing method cannot be nil")
		}
		if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
			return fmt.Errorf("signing method %s is not supported, only HS256, HS384 and HS512 are", method.Alg())
		}
		c.signingMethod = method
		return nil
	}
}

// WithTTL sets the lifetime of tokens created by Issue
func WithTTL(ttl time.Duration) ConfigOption {
	return func(c *Config) error {
		if ttl <= 0 {
			return fmt.Errorf("token ttl must be positive, got %v", ttl)
		}
		c.ttl = ttl
		return nil
	}
}

// WithIssuer sets the issuer stamped by Issue and expected by Decode
func WithIssuer(issuer string) ConfigOption {
	return func(c *Config) error {
		c.issuer = issuer
		return nil
	}
}

// WithAudience sets the audience stamped by Issue and expected by Decode
func WithAudience(audience string) ConfigOption {
	return func(c *Config) error {
		c.audience = audience
		return nil
	}
}

// WithClockSkew sets the clock skew tolerance for exp/nbf validation
func WithClockSkew(skew time.Duration) ConfigOption {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithLogger sets a structured logger for security events
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithClock replaces the time source used for iat and expiry checks
func WithClock(now func() time.Time) ConfigOption {
	return func(c *Config) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

func checkSecret(secret []byte) error {
	if len(secret) < minSecretLength {
		return fmt.Errorf("secret must be at least %d bytes, got %d bytes", minSecretLength, len(secret))
	}
	return nil
}

func (c *Config) Algorithm() string {
	return c.signingMethod.Alg()
}

func (c *Config) TTL() time.Duration {
	return c.ttl
}

func (c *Config) Issuer() string {
	return c.issuer
}

func (c *Config) Audience() string {
	return c.audience
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}
