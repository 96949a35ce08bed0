package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey struct{}

// ContextWithClaims attaches claims to ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFromContext returns the claims attached by the interceptor.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// Policy configures UnaryAuthInterceptor. Public methods skip authentication;
// methods listed in Roles additionally require one of the given roles.
type Policy struct {
	Public []string
	Roles  map[string][]string
}

// UnaryAuthInterceptor authenticates bearer tokens from the "authorization"
// metadata key and enforces p.
func UnaryAuthInterceptor(v *Validator, p Policy) grpc.UnaryServerInterceptor {
	public := make(map[string]struct{}, len(p.Public))
	for _, m := range p.Public {
		public[m] = struct{}{}
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if _, ok := public[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		claims, err := v.Validate(strings.TrimPrefix(values[0], "Bearer "))
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
		}

		if roles, ok := p.Roles[info.FullMethod]; ok && !claims.HasAnyRole(roles...) {
			return nil, status.Errorf(codes.PermissionDenied, "required role(s): %v", roles)
		}

		return handler(ContextWithClaims(ctx, claims), req)
	}
}
