package jwtauth

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

const (
	// DefaultQueryParam is the query string parameter checked for a token
	DefaultQueryParam = "token"

	bearerScheme = "bearer"
)

// Extractor locates the raw token in a request. It does not validate the
// token; that is the codec's job.
type Extractor struct {
	header      bool
	query       bool
	queryParam  string
	cookieName  string
	preferQuery bool
}

// ExtractorOption configures an Extractor
type ExtractorOption func(*Extractor)

// NewExtractor returns an extractor that checks the Authorization header and
// then the token query parameter, unless configured otherwise.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		header:     true,
		query:      true,
		queryParam: DefaultQueryParam,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithHeader enables or disables the "Authorization: Bearer <token>" source
func WithHeader(enabled bool) ExtractorOption {
	return func(e *Extractor) {
		e.header = enabled
	}
}

// WithQuery enables or disables the query parameter source
func WithQuery(enabled bool) ExtractorOption {
	return func(e *Extractor) {
		e.query = enabled
	}
}

// WithQueryParam changes the query parameter name (default "token")
func WithQueryParam(name string) ExtractorOption {
	return func(e *Extractor) {
		if name != "" {
			e.queryParam = name
		}
	}
}

// WithCookie enables token extraction from a cookie, checked after the other sources
func WithCookie(cookieName string) ExtractorOption {
	return func(e *Extractor) {
		e.cookieName = cookieName
	}
}

// PreferQuery checks the query parameter before the Authorization header
func PreferQuery() ExtractorOption {
	return func(e *Extractor) {
		e.preferQuery = true
	}
}

// Extract returns the token from the first enabled source that has one.
func (e *Extractor) Extract(r *http.Request) (string, bool) {
	sources := []func(*http.Request) (string, bool){e.fromHeader, e.fromQuery}
	if e.preferQuery {
		sources[0], sources[1] = sources[1], sources[0]
	}
	sources = append(sources, e.fromCookie)

	for _, source := range sources {
		if token, ok := source(r); ok {
			return token, true
		}
	}
	return "", false
}

func (e *Extractor) fromHeader(r *http.Request) (string, bool) {
	if !e.header {
		return "", false
	}
	return parseBearer(r.Header.Get("Authorization"))
}

func (e *Extractor) fromQuery(r *http.Request) (string, bool) {
	if !e.query || r.URL == nil {
		return "", false
	}
	token := strings.TrimSpace(r.URL.Query().Get(e.queryParam))
	return token, token != ""
}

func (e *Extractor) fromCookie(r *http.Request) (string, bool) {
	if e.cookieName == "" {
		return "", false
	}
	cookie, err := r.Cookie(e.cookieName)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(cookie.Value)
	return token, token != ""
}

// ExtractMetadata extracts the token from gRPC "authorization" metadata
func ExtractMetadata(md metadata.MD) (string, bool) {
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", false
	}
	return parseBearer(values[0])
}

// parseBearer splits "Bearer <token>". The scheme is case-insensitive.
func parseBearer(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != bearerScheme {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
