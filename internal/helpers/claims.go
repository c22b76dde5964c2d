package helpers

import (
	"strings"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "ADMIN"
	RoleVillaOwner = "VILLA_OWNER"
	RoleGuest      = "GUEST"
)

type EnhancedClaims struct {
	*CustomClaims
	Role   string    `json:"role"`
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email,omitempty"`
	Name   string    `json:"name,omitempty"`
}

// NewEnhancedClaims resolves the caller's id and role from validated token claims.
// The first recognised role wins: app_metadata roles, then the top-level role claim.
func NewEnhancedClaims(claims *CustomClaims) (*EnhancedClaims, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, err
	}
	role := ""
	for _, r := range claims.AppMetadata.Roles {
		if role = NormalizeRole(r); role != "" {
			break
		}
	}
	if role == "" {
		role = NormalizeRole(claims.Role)
	}
	name := claims.Name
	if name == "" {
		if v, ok := claims.UserMetadata["full_name"].(string); ok {
			name = v
		}
	}
	return &EnhancedClaims{
		CustomClaims: claims,
		Role:         role,
		UserID:       id,
		Email:        claims.Email,
		Name:         name,
	}, nil
}

// NormalizeRole maps a role claim onto a known role, or "" if it is not one.
func NormalizeRole(role string) string {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleVillaOwner, "OWNER", "HOST":
		return RoleVillaOwner
	case RoleGuest, "AUTHENTICATED", "USER":
		return RoleGuest
	}
	return ""
}

func (ec *EnhancedClaims) HasRole(roles ...string) bool {
	for _, r := range roles {
		if ec.GetSafeRole() == r {
			return true
		}
	}
	return false
}

func (ec *EnhancedClaims) GetSafeRole() string {
	if ec.Role == "" {
		return RoleGuest
	}
	return ec.Role
}
