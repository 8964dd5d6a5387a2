package jwtauth

import "time"

// Registered claim keys written and read by the codec.
const (
	claimExpiresAt = "exp"
	claimIssuer    = "iss"
	claimSubject   = "sub"
	claimAudience  = "aud"
	claimNotBefore = "nbf"
	claimIssuedAt  = "iat"
)

var registeredClaims = map[string]bool{
	claimExpiresAt: true,
	claimIssuer:    true,
	claimSubject:   true,
	claimAudience:  true,
	claimNotBefore: true,
	claimIssuedAt:  true,
}

// Claims is the payload of a short-lived token. T carries application
// fields such as a refresh token id or the granted scopes.
//
// Zero values mean absent: an empty Issuer is not written to the token and a
// token without nbf decodes with a zero NotBefore.
type Claims[T any] struct {
	ExpiresAt time.Time // exp, required
	Issuer    string    // iss
	Subject   string    // sub
	Audience  string    // aud
	NotBefore time.Time // nbf
	IssuedAt  time.Time // iat, overwritten by every Encode
	Extra     T
}

// Expired reports whether the claims are past their expiry at now.
func (c *Claims[T]) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

func unixSeconds(t time.Time) int64 {
	return t.Unix()
}

func fromUnixSeconds(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
