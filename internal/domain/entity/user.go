package entity

import (
	"time"
)

// Role is the authorization role attached to a user. It is a closed set;
// ParseRole is the only way to obtain one from untrusted input.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleOwner Role = "owner"
)

// ParseRole maps a raw string to a Role, reporting whether it is a known one.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleOwner:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext. Re-hashing happens only
// through the explicit ChangePassword path, never on unrelated saves.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Address   string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the (id, role) pair extracted from a validated bearer token.
// It is authoritative for every ownership check; handlers never trust
// client-supplied identity fields.
type Identity struct {
	UserID string
	Role   Role
}
