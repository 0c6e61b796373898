package model

// Role is an opaque permission tag carried by both the token and the user record.
type Role string

// Roles the marketplace is known to issue. Others are still accepted.
const (
	RoleBuyer  Role = "buyer"
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

// IsKnown reports whether the role is one of the well-known marketplace roles
func (r Role) IsKnown() bool {
	switch r {
	case RoleBuyer, RoleFarmer, RoleAdmin:
		return true
	}
	return false
}
