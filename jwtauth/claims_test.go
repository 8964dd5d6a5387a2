package jwtauth

import (
	"testing"
	"time"
)

func TestClaimsExpired(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{name: "future expiry", expiresAt: now.Add(time.Second), expected: false},
		{name: "expires exactly now", expiresAt: now, expected: true},
		{name: "past expiry", expiresAt: now.Add(-time.Hour), expected: true},
		{name: "no expiry", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims[NoExtra]{ExpiresAt: tt.expiresAt}
			if got := claims.Expired(now); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestExpiredMatchesDecode tests that Expired agrees with the codec's expiry check
func TestExpiredMatchesDecode(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := mustCreateCodec(t, mustSecret(t), WithClock(func() time.Time { return now }))

	for _, offset := range []time.Duration{-time.Second, 0, time.Second} {
		claims := &Claims[testExtra]{ExpiresAt: now.Add(offset), Extra: validExtra()}
		token := mustEncode(t, codec, claims)

		_, ok := codec.Decode(token)
		if ok == claims.Expired(now) {
			t.Errorf("offset %v: Decode ok=%v but Expired=%v", offset, ok, claims.Expired(now))
		}
	}
}
