package schema

import "strings"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the public profile of an authenticated user. It never carries
// secret material.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// WellFormed reports whether a stored identity can be restored as-is
func (i *Identity) WellFormed() bool {
	if i == nil || i.ID == "" || i.Name == "" {
		return false
	}
	return i.Role == RoleUser || i.Role == RoleAdmin
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Credential is a known account of the identity directory. The password is
// kept as a bcrypt hash.
type Credential struct {
	Identity     `mapstructure:",squash" yaml:",inline"`
	PasswordHash string `json:"-" mapstructure:"password_hash" yaml:"password_hash"`
}

// MatchesEmail compares emails the way users type them, ignoring case
func (c Credential) MatchesEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Email), strings.TrimSpace(email))
}
