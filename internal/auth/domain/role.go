package domain

import (
	"encoding/json"
	"fmt"
)

// Role is the authorization level of an account. The role gate does an
// exact match, not a privilege ordering, so there is no Less/AtLeast here.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole maps the wire form back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "ADMIN":
		return RoleAdmin, nil
	case "USER":
		return RoleUser, nil
	default:
		return RoleUser, fmt.Errorf("domain: unknown role %q", s)
	}
}

// Roles serialize as their names ("USER", "ADMIN") rather than ints so
// clients and token claims stay readable.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
