package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs Claims into compact tokens and verifies them back.
// A Codec is immutable and safe for concurrent use.
type Codec[T any] struct {
	cfg    *Config
	mapper ExtraMapper[T]
}

// NewCodec builds a codec for claims carrying extension type T.
func NewCodec[T any](mapper ExtraMapper[T], opts ...ConfigOption) (*Codec[T], error) {
	if mapper == nil {
		return nil, NewValidationError(ErrConfigError, "extra claims mapper cannot be nil", nil)
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Codec[T]{cfg: cfg, mapper: mapper}, nil
}

// Config returns the codec configuration
func (c *Codec[T]) Config() *Config {
	return c.cfg
}

// callOptions are per-call overrides of the codec configuration
type callOptions struct {
	secret   []byte
	issuer   string
	audience string
}

// CallOption overrides the configured secret or expectations for one call
type CallOption func(*callOptions)

// UsingSecret signs or verifies with secret instead of the configured one
func UsingSecret(secret []byte) CallOption {
	return func(o *callOptions) {
		o.secret = secret
	}
}

// ExpectIssuer makes Decode require the iss claim to equal issuer
func ExpectIssuer(issuer string) CallOption {
	return func(o *callOptions) {
		o.issuer = issuer
	}
}

// ExpectAudience makes Decode require the aud claim to contain audience
func ExpectAudience(audience string) CallOption {
	return func(o *callOptions) {
		o.audience = audience
	}
}

func (c *Codec[T]) callOptions(opts []CallOption) callOptions {
	o := callOptions{
		secret:   c.cfg.secret,
		issuer:   c.cfg.issuer,
		audience: c.cfg.audience,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Issue creates claims for subject that expire after the configured TTL,
// stamps the configured issuer and audience, and encodes them.
func (c *Codec[T]) Issue(subject string, extra T) (string, *Claims[T], error) {
	now := c.cfg.now().UTC()
	claims := &Claims[T]{
		ExpiresAt: now.Add(c.cfg.ttl).Truncate(time.Second),
		Issuer:    c.cfg.issuer,
		Subject:   subject,
		Audience:  c.cfg.audience,
		Extra:     extra,
	}

	token, err := c.Encode(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Encode stamps claims.IssuedAt with the current time and returns the signed
// token. Absent optional claims are left out of the payload.
//
// Encode fails only when it cannot produce a token that Decode would accept:
// claims is nil, ExpiresAt is zero (exp is required on decode), the secret is
// shorter than 32 bytes, or the mapper cannot dump claims.Extra.
func (c *Codec[T]) Encode(claims *Claims[T], opts ...CallOption) (string, error) {
	call := c.callOptions(opts)
	if err := checkSecret(call.secret); err != nil {
		return "", NewValidationError(ErrConfigError, "invalid signing secret", err)
	}
	if claims == nil {
		return "", NewValidationError(ErrInvalidClaims, "claims cannot be nil", nil)
	}
	if claims.ExpiresAt.IsZero() {
		return "", NewValidationError(ErrInvalidClaims, "expiry is required", nil)
	}

	claims.IssuedAt = c.cfg.now().UTC().Truncate(time.Second)

	payload, err := c.payload(claims)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(c.cfg.signingMethod, payload)
	signed, err := token.SignedString(call.secret)
	if err != nil {
		return "", NewValidationError(ErrConfigError, "failed to sign token", err)
	}
	return signed, nil
}

// payload flattens claims into the map that gets signed. Registered claims
// are written after the extra fields and win on conflicting keys.
func (c *Codec[T]) payload(claims *Claims[T]) (jwt.MapClaims, error) {
	extra, err := c.mapper.Dump(claims.Extra)
	if err != nil {
		return nil, NewValidationError(ErrInvalidClaims, "failed to map extra claims", err)
	}

	payload := make(jwt.MapClaims, len(extra)+len(registeredClaims))
	for key, value := range extra {
		if !registeredClaims[key] {
			payload[key] = value
		}
	}

	payload[claimExpiresAt] = unixSeconds(claims.ExpiresAt)
	payload[claimIssuedAt] = unixSeconds(claims.IssuedAt)
	if !claims.NotBefore.IsZero() {
		payload[claimNotBefore] = unixSeconds(claims.NotBefore)
	}
	if claims.Issuer != "" {
		payload[claimIssuer] = claims.Issuer
	}
	if claims.Subject != "" {
		payload[claimSubject] = claims.Subject
	}
	if claims.Audience != "" {
		payload[claimAudience] = claims.Audience
	}

	return payload, nil
}

// Decode verifies tokenString and returns its claims. Every failure, whether
// a bad signature, a malformed payload, expiry or an issuer/audience
// mismatch, is reported the same way: (nil, false).
func (c *Codec[T]) Decode(tokenString string, opts ...CallOption) (*Claims[T], bool) {
	return c.DecodeContext(context.Background(), tokenString, opts...)
}

// DecodeContext is Decode with a request context used to correlate the
// security event it logs.
func (c *Codec[T]) DecodeContext(ctx context.Context, tokenString string, opts ...CallOption) (*Claims[T], bool) {
	startTime := time.Now()
	requestID, _ := GetRequestID(ctx)

	claims, err := c.parse(tokenString, c.callOptions(opts))
	if err != nil {
		logDecodeFailure(c.cfg, requestID, tokenString, err, time.Since(startTime))
		return nil, false
	}

	logDecodeSuccess(c.cfg, requestID, claims.Subject, tokenString, time.Since(startTime))
	return claims, true
}

// parse does the verification behind Decode and keeps the failure reason.
func (c *Codec[T]) parse(tokenString string, call callOptions) (*Claims[T], error) {
	if tokenString == "" {
		return nil, NewValidationError(ErrMissingToken, "token is empty", nil)
	}
	if err := checkSecret(call.secret); err != nil {
		return nil, NewValidationError(ErrConfigError, "invalid verification secret", err)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.cfg.signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.cfg.clockSkewLeeway),
		jwt.WithTimeFunc(c.cfg.now),
		jwt.WithStrictDecoding(),
		jwt.WithJSONNumber(),
	}
	if call.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(call.issuer))
	}
	if call.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(call.audience))
	}

	token, err := jwt.NewParser(parserOpts...).Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return call.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, NewValidationError(ErrInvalidSignature, "token is invalid", nil)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewValidationError(ErrMalformed, "invalid claims format", nil)
	}

	return c.claimsFromMap(mapClaims)
}

// classifyParseError maps library errors onto our codes. Claim errors are
// checked before the generic malformed case because the library joins them.
func classifyParseError(err error) *ValidationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewValidationError(ErrExpired, "token has expired", err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return NewValidationError(ErrNotYetValid, "token is not valid yet", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return NewValidationError(ErrInvalidIssuer, "token issuer does not match", err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return NewValidationError(ErrInvalidAudience, "token audience does not match", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return NewValidationError(ErrInvalidSignature, "signature verification failed", err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing), errors.Is(err, jwt.ErrTokenInvalidClaims):
		return NewValidationError(ErrInvalidClaims, "token claims are invalid", err)
	default:
		return NewValidationError(ErrMalformed, "malformed token", err)
	}
}

// claimsFromMap converts verified claims into Claims[T]. A registered claim
// of the wrong type or a mapper failure rejects the whole token.
func (c *Codec[T]) claimsFromMap(mapClaims jwt.MapClaims) (*Claims[T], error) {
	invalid := func(name string, err error) error {
		return NewValidationError(ErrInvalidClaims, fmt.Sprintf("invalid %s claim", name), err)
	}

	claims := &Claims[T]{}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, invalid(claimExpiresAt, err)
	}
	claims.ExpiresAt = fromUnixSeconds(exp.Unix())

	nbf, err := mapClaims.GetNotBefore()
	if err != nil {
		return nil, invalid(claimNotBefore, err)
	}
	if nbf != nil {
		claims.NotBefore = fromUnixSeconds(nbf.Unix())
	}

	iat, err := mapClaims.GetIssuedAt()
	if err != nil {
		return nil, invalid(claimIssuedAt, err)
	}
	if iat != nil {
		claims.IssuedAt = fromUnixSeconds(iat.Unix())
	}

	if claims.Issuer, err = mapClaims.GetIssuer(); err != nil {
		return nil, invalid(claimIssuer, err)
	}
	if claims.Subject, err = mapClaims.GetSubject(); err != nil {
		return nil, invalid(claimSubject, err)
	}

	aud, err := mapClaims.GetAudience()
	if err != nil {
		return nil, invalid(claimAudience, err)
	}
	switch len(aud) {
	case 0:
	case 1:
		claims.Audience = aud[0]
	default:
		return nil, invalid(claimAudience, fmt.Errorf("expected a single audience, got %d", len(aud)))
	}

	fields := make(map[string]any, len(mapClaims))
	for key, value := range mapClaims {
		if !registeredClaims[key] {
			fields[key] = value
		}
	}
	extra, err := c.mapper.Load(fields)
	if err != nil {
		return nil, NewValidationError(ErrInvalidClaims, "failed to load extra claims", err)
	}
	claims.Extra = extra

	return claims, nil
}
