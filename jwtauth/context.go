package jwtauth

import "context"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey string

const (
	claimsContextKey    contextKey = "github.com/Wang-tianhao/shortlived-token-go/jwtauth:claims"
	rawTokenContextKey  contextKey = "github.com/Wang-tianhao/shortlived-token-go/jwtauth:raw_token"
	requestIDContextKey contextKey = "github.com/Wang-tianhao/shortlived-token-go/jwtauth:request_id"
)

// WithClaims stores decoded claims in the request context.
// Claims are shared and should not be modified by downstream handlers.
func WithClaims[T any](ctx context.Context, claims *Claims[T]) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// GetClaims retrieves decoded claims from the request context.
// Returns nil, false if no token was presented or T does not match the
// extension type the claims were decoded with.
func GetClaims[T any](ctx context.Context) (*Claims[T], bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims[T])
	return claims, ok && claims != nil
}

// MustGetClaims retrieves claims from context and panics if not present.
// Use only behind RequireToken or the gRPC interceptor.
func MustGetClaims[T any](ctx context.Context) *Claims[T] {
	claims, ok := GetClaims[T](ctx)
	if !ok {
		panic("jwtauth: claims not found in context")
	}
	return claims
}

// WithRawToken stores the token string the claims were decoded from
func WithRawToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, rawTokenContextKey, token)
}

// GetRawToken retrieves the raw token string from context
func GetRawToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(rawTokenContextKey).(string)
	return token, ok
}

// WithRequestID stores a request ID in context for correlation
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok
}
