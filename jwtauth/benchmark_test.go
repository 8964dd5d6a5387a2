package jwtauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BenchmarkEncode measures signing a token with extra claims
func BenchmarkEncode(b *testing.B) {
	codec := mustCreateCodec(b, mustSecret(b))
	claims := &Claims[testExtra]{
		ExpiresAt: time.Now().Add(time.Hour),
		Subject:   "user123",
		Extra:     validExtra(),
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = codec.Encode(claims)
	}
}

// BenchmarkDecode measures verifying a valid token
func BenchmarkDecode(b *testing.B) {
	codec := mustCreateCodec(b, mustSecret(b))
	token := mustEncode(b, codec, &Claims[testExtra]{
		ExpiresAt: time.Now().Add(time.Hour),
		Subject:   "user123",
		Extra:     validExtra(),
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = codec.Decode(token)
	}
}

// BenchmarkDecodeNoExtra measures verification without the JSON mapper
func BenchmarkDecodeNoExtra(b *testing.B) {
	codec, err := NewCodec(NoExtraMapper(), WithSecret(mustSecret(b)), WithSigningMethod(jwt.SigningMethodHS512))
	if err != nil {
		b.Fatalf("Failed to create codec: %v", err)
	}
	token, err := codec.Encode(&Claims[NoExtra]{ExpiresAt: time.Now().Add(time.Hour)})
	if err != nil {
		b.Fatalf("Failed to encode: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = codec.Decode(token)
	}
}

// BenchmarkDecodeRejected measures the failure path
func BenchmarkDecodeRejected(b *testing.B) {
	codec := mustCreateCodec(b, mustSecret(b))
	token := mustEncode(b, mustCreateCodec(b, mustSecret(b)), &Claims[testExtra]{
		ExpiresAt: time.Now().Add(time.Hour),
		Extra:     validExtra(),
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = codec.Decode(token)
	}
}

func BenchmarkRequireAll(b *testing.B) {
	granted := []string{"read", "write", "notes:read", "notes:write"}
	required := []string{"notes:read", "write"}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = RequireAll(granted, required)
	}
}
