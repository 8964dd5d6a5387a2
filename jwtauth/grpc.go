package jwtauth

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor that
// requires a valid Bearer token in the "authorization" metadata
func UnaryServerInterceptor[T any](codec *Codec[T]) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "metadata not found")
		}

		requestID := uuid.New().String()
		if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
			requestID = ids[0]
		}
		ctx = WithRequestID(ctx, requestID)

		token, ok := ExtractMetadata(md)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, msgTokenRequired)
		}

		claims, ok := codec.DecodeContext(ctx, token)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, msgInvalidToken)
		}

		ctx = WithClaims(ctx, claims)
		ctx = WithRawToken(ctx, token)

		return handler(ctx, req)
	}
}

// UnaryScopeInterceptor rejects calls whose claims lack any of required.
// Chain it after UnaryServerInterceptor.
func UnaryScopeInterceptor[T any](scopesOf func(*Claims[T]) []string, required ...string) grpc.UnaryServerInterceptor {
	return scopeInterceptor(scopesOf, func(granted []string) error {
		return RequireAll(granted, required)
	})
}

// UnaryAcceptScopeInterceptor rejects calls whose claims grant none of accepted.
// Chain it after UnaryServerInterceptor.
func UnaryAcceptScopeInterceptor[T any](scopesOf func(*Claims[T]) []string, accepted ...string) grpc.UnaryServerInterceptor {
	return scopeInterceptor(scopesOf, func(granted []string) error {
		return AcceptAny(granted, accepted)
	})
}

func scopeInterceptor[T any](scopesOf func(*Claims[T]) []string, check func(granted []string) error) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		claims, ok := GetClaims[T](ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, msgTokenRequired)
		}

		if err := check(scopesOf(claims)); err != nil {
			return nil, status.Error(codes.PermissionDenied, err.Error())
		}

		return handler(ctx, req)
	}
}
