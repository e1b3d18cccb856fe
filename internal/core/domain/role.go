package domain

// RoleName is the closed set of roles a user can hold.
type RoleName string

const (
	RoleClient       RoleName = "client"
	RoleVeterinarian RoleName = "veterinarian"
	RoleReceptionist RoleName = "receptionist"
	RoleAdmin        RoleName = "admin"
)

// DefaultRole is assigned when registration does not name a role.
const DefaultRole = RoleClient

// Role is a named permission class.
type Role struct {
	ID   uint     `json:"id"`
	Name RoleName `json:"name"`
}

// RoleCatalog returns the roles seeded at startup, in seeding order.
func RoleCatalog() []RoleName {
	return []RoleName{RoleClient, RoleVeterinarian, RoleReceptionist, RoleAdmin}
}

// IsValid reports whether r belongs to the catalog. Matching is exact and
// case-sensitive.
func (r RoleName) IsValid() bool {
	switch r {
	case RoleClient, RoleVeterinarian, RoleReceptionist, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRoleName resolves a requested role name. An empty name resolves to
// DefaultRole; anything outside the catalog is an UnknownRole error.
func ParseRoleName(s string) (RoleName, error) {
	if s == "" {
		return DefaultRole, nil
	}
	r := RoleName(s)
	if !r.IsValid() {
		return "", UnknownRole(s)
	}
	return r, nil
}
