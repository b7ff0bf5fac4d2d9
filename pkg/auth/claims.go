package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims for the HarborBank servicing platform.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Roles    []string  `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// BelongsToTenant reports whether the claims are scoped to the given tenant.
// Admin tokens pass for any tenant.
func (c Claims) BelongsToTenant(tenantID string) bool {
	if c.HasRole(RoleAdmin) {
		return true
	}
	return c.TenantID.String() == tenantID
}

// Role constants
const (
	RoleAdmin       = "admin"
	RoleServicer    = "servicer"
	RoleCollections = "collections"
	RoleAuditor     = "auditor"
	RoleBorrower    = "borrower"
	RoleAPIClient   = "api_client"
)
