package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Wang-tianhao/shortlived-token-go/jwtauth"
)

// scopeClaims is the extension payload minted by this tool
type scopeClaims struct {
	UserID string   `json:"user_id,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
}

func main() {
	var (
		secret   = flag.String("secret", os.Getenv("TOKEN_SECRET_KEY"), "Secret key (minimum 32 bytes, defaults to $TOKEN_SECRET_KEY)")
		subject  = flag.String("sub", "user123", "Subject (user ID)")
		scopes   = flag.String("scopes", "", "Space-delimited scopes")
		issuer   = flag.String("iss", "", "Issuer")
		audience = flag.String("aud", "", "Audience")
		ttl      = flag.Duration("ttl", time.Hour, "Token lifetime")
		decode   = flag.String("decode", "", "Verify this token instead of minting one")
		verbose  = flag.Bool("v", false, "Log security events to stderr")
	)

	flag.Parse()

	if len(*secret) < 32 {
		log.Fatal("Secret must be at least 32 bytes")
	}

	opts := []jwtauth.ConfigOption{
		jwtauth.WithSecret([]byte(*secret)),
		jwtauth.WithTTL(*ttl),
		jwtauth.WithIssuer(*issuer),
		jwtauth.WithAudience(*audience),
	}
	if *verbose {
		opts = append(opts, jwtauth.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	codec, err := jwtauth.NewCodec(jwtauth.JSONMapper[scopeClaims](), opts...)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if *decode != "" {
		claims, ok := codec.Decode(*decode)
		if !ok {
			fmt.Println("Token is invalid.")
			os.Exit(1)
		}
		printClaims(claims)
		return
	}

	tokenString, claims, err := codec.Issue(*subject, scopeClaims{
		UserID: *subject,
		Scopes: jwtauth.ParseScopes(*scopes),
	})
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println("\n=== Token Generated ===")
	fmt.Printf("\nToken: %s\n\n", tokenString)
	printClaims(claims)
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/protected\n", tokenString)
	fmt.Printf("  curl 'http://localhost:8080/protected?token=%s'\n\n", tokenString)
}

func printClaims(claims *jwtauth.Claims[scopeClaims]) {
	fmt.Println("Claims:")
	fmt.Printf("  Subject:  %s\n", claims.Subject)
	if claims.Issuer != "" {
		fmt.Printf("  Issuer:   %s\n", claims.Issuer)
	}
	if claims.Audience != "" {
		fmt.Printf("  Audience: %s\n", claims.Audience)
	}
	fmt.Printf("  Scopes:   %s\n", strings.Join(claims.Extra.Scopes, " "))
	fmt.Printf("  Issued:   %s\n", claims.IssuedAt.Format(time.RFC3339))
	fmt.Printf("  Expires:  %s\n", claims.ExpiresAt.Format(time.RFC3339))
	if now := time.Now(); claims.Expired(now) {
		fmt.Println("  Status:   expired")
	} else {
		fmt.Printf("  Status:   valid for %s\n", claims.ExpiresAt.Sub(now).Round(time.Second))
	}
	fmt.Println()
}
