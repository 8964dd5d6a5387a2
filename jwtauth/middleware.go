package jwtauth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Wang-tianhao/shortlived-token-go/respond"
)

const (
	msgInvalidToken  = "The provided token was invalid."
	msgTokenRequired = "A valid token is required to access this resource"
)

// ParseToken returns a Gin middleware that decodes the request token if one
// is present. Requests without a token pass through anonymously; requests
// with a token that does not decode are rejected with 401.
func ParseToken[T any](codec *Codec[T], extractor *Extractor) gin.HandlerFunc {
	if extractor == nil {
		extractor = NewExtractor()
	}

	return func(c *gin.Context) {
		// Generate or extract request ID for correlation
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		token, ok := extractor.Extract(c.Request)
		if !ok {
			c.Next()
			return
		}

		claims, ok := codec.DecodeContext(ctx, token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, respond.FormatErrors(msgInvalidToken))
			return
		}

		ctx = WithClaims(ctx, claims)
		ctx = WithRawToken(ctx, token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireToken rejects requests that ParseToken did not attach claims to.
func RequireToken[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetClaims[T](c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, respond.FormatErrors(msgTokenRequired))
			return
		}
		c.Next()
	}
}

// RequireScopes rejects requests whose token is missing any of required.
func RequireScopes[T any](scopesOf func(*Claims[T]) []string, required ...string) gin.HandlerFunc {
	return scopeMiddleware(scopesOf, func(granted []string) error {
		return RequireAll(granted, required)
	})
}

// AcceptScopes rejects requests whose token grants none of accepted.
func AcceptScopes[T any](scopesOf func(*Claims[T]) []string, accepted ...string) gin.HandlerFunc {
	return scopeMiddleware(scopesOf, func(granted []string) error {
		return AcceptAny(granted, accepted)
	})
}

func scopeMiddleware[T any](scopesOf func(*Claims[T]) []string, check func(granted []string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims[T](c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, respond.FormatErrors(msgTokenRequired))
			return
		}

		if err := check(scopesOf(claims)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, buildForbiddenResponse(err))
			return
		}
		c.Next()
	}
}

// buildForbiddenResponse renders a scope failure with the scope lists that
// explain it
func buildForbiddenResponse(err error) gin.H {
	response := respond.FormatErrors(err.Error())

	if forbidden, ok := err.(*ForbiddenError); ok {
		response["required"] = forbidden.Required
		response["granted"] = forbidden.Granted
		if forbidden.Mode == ScopeModeAll {
			response["missing"] = forbidden.Missing
		}
	}

	return response
}
