package jwtauth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SecurityEvent represents a structured security log entry
type SecurityEvent struct {
	EventType     string        // "success" or "failure"
	Timestamp     time.Time     // Event timestamp
	RequestID     string        // Correlation ID
	Subject       string        // sub claim (empty on failure)
	Algorithm     string        // alg header of the presented token
	FailureReason string        // Error code (on failure)
	TokenPreview  string        // Redacted on output
	Latency       time.Duration // Validation latency
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e SecurityEvent) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.String("subject", e.Subject),
		slog.String("algorithm", e.Algorithm),
		slog.String("token", redactToken(e.TokenPreview)),
		slog.Duration("latency", e.Latency),
	}
	if e.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", e.FailureReason))
	}
	return slog.GroupValue(attrs...)
}

// redactToken redacts sensitive token data
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// logSecurityEvent emits a security event via the configured logger
func logSecurityEvent(logger *slog.Logger, event SecurityEvent) {
	if logger == nil {
		return
	}

	if event.EventType == "failure" {
		logger.Warn("token rejected", "auth_event", event)
	} else {
		logger.Info("token accepted", "auth_event", event)
	}
}

func logDecodeSuccess(cfg *Config, requestID, subject, token string, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	logSecurityEvent(cfg.Logger(), SecurityEvent{
		EventType:    "success",
		Timestamp:    time.Now(),
		RequestID:    requestID,
		Subject:      subject,
		Algorithm:    tokenAlgorithm(token),
		TokenPreview: token,
		Latency:      latency,
	})
}

func logDecodeFailure(cfg *Config, requestID, token string, err error, latency time.Duration) {
	if cfg.Logger() == nil {
		return
	}

	logSecurityEvent(cfg.Logger(), SecurityEvent{
		EventType:     "failure",
		Timestamp:     time.Now(),
		RequestID:     requestID,
		Algorithm:     tokenAlgorithm(token),
		FailureReason: string(errorCode(err)),
		TokenPreview:  token,
		Latency:       latency,
	})
}

// errorCode extracts the code from a validation or scope error
func errorCode(err error) ErrorCode {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Code
	}
	var forbidden *ForbiddenError
	if errors.As(err, &forbidden) {
		return forbidden.Code()
	}
	return "UNKNOWN"
}

// tokenAlgorithm reads the alg header without verifying the token.
// Returns "MALFORMED" when the header cannot be read.
func tokenAlgorithm(token string) string {
	if token == "" {
		return ""
	}

	segment, _, ok := strings.Cut(token, ".")
	if !ok {
		return "MALFORMED"
	}
	raw, err := jwt.NewParser().DecodeSegment(segment)
	if err != nil {
		return "MALFORMED"
	}

	var header map[string]interface{}
	if err := json.Unmarshal(raw, &header); err != nil {
		return "MALFORMED"
	}
	if alg, ok := header["alg"].(string); ok {
		return alg
	}
	return "MALFORMED"
}
