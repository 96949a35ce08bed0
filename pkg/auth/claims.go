package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer token claims issued by the gateway.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"roles"`
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(c.Roles, r) {
			return true
		}
	}
	return false
}

const (
	RoleAdmin     = "admin"
	RoleOperator  = "operator"
	RoleAPIClient = "api_client"
)
