package domain

import "fmt"

// Role identifies the acting party for a pricing computation. Every priced
// quantity is attributable to exactly one role at computation time; the role
// is supplied per call by the identity provider and never cached here.
type Role string

const (
	RoleCustomer    Role = "customer"
	RoleAgent       Role = "agent"
	RoleReseller    Role = "reseller"
	RoleDistributor Role = "distributor"
	RolePrincipal   Role = "principal"
)

// Roles lists every recognized role, in display order.
var Roles = []Role{RoleCustomer, RoleAgent, RoleReseller, RoleDistributor, RolePrincipal}

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleReseller, RoleDistributor, RolePrincipal:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", Errorf(EINVALID, "role.parse", "unknown role: %q", s)
	}
	return r, nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return fmt.Errorf("unmarshal role: %w", err)
	}
	*r = parsed
	return nil
}
