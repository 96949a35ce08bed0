package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryAuthInterceptor(t *testing.T) {
	v, err := NewValidator(JWTConfig{Secret: testSecret, Issuer: "bib-gateway"})
	require.NoError(t, err)

	interceptor := UnaryAuthInterceptor(v, Policy{
		Public: []string{"/grpc.health.v1.Health/Check"},
		Roles:  map[string][]string{"/svc/Admin": {RoleAdmin}},
	})

	var seen *Claims
	handler := func(ctx context.Context, _ interface{}) (interface{}, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}
	withToken := func(token string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
	}
	call := func(ctx context.Context, method string) error {
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, handler)
		return err
	}

	t.Run("public methods skip authentication", func(t *testing.T) {
		seen = nil
		require.NoError(t, call(context.Background(), "/grpc.health.v1.Health/Check"))
		assert.Nil(t, seen)
	})

	t.Run("missing token is unauthenticated", func(t *testing.T) {
		err := call(metadata.NewIncomingContext(context.Background(), metadata.MD{}), "/svc/Read")
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("invalid token is unauthenticated", func(t *testing.T) {
		err := call(withToken("garbage"), "/svc/Read")
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		require.NoError(t, call(withToken(signHS256(t, validClaims())), "/svc/Read"))
		require.NotNil(t, seen)
		assert.Equal(t, "tenant-1", seen.TenantID)
	})

	t.Run("role-restricted methods check roles", func(t *testing.T) {
		err := call(withToken(signHS256(t, validClaims())), "/svc/Admin")
		assert.Equal(t, codes.PermissionDenied, status.Code(err))

		c := validClaims()
		c.Roles = []string{RoleAdmin}
		assert.NoError(t, call(withToken(signHS256(t, c)), "/svc/Admin"))
	})
}
