package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bitmark-inc/community-aid/schema"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
)

// Directory is a fixed list of known accounts
type Directory struct {
	credentials []schema.Credential
}

// demo accounts used when no account is configured
var demoAccounts = []struct {
	identity schema.Identity
	password string
}{
	{
		identity: schema.Identity{ID: "1", Name: "Admin User", Email: "admin@example.com", Role: schema.RoleAdmin},
		password: "admin123",
	},
	{
		identity: schema.Identity{ID: "2", Name: "Regular User", Email: "user@example.com", Role: schema.RoleUser},
		password: "user123",
	},
}

func NewDirectory(credentials []schema.Credential) *Directory {
	return &Directory{credentials: credentials}
}

// NewDemoDirectory builds a directory with the built-in admin and user accounts
func NewDemoDirectory() (*Directory, error) {
	credentials := make([]schema.Credential, 0, len(demoAccounts))
	for _, a := range demoAccounts {
		c, err := NewCredential(a.identity, a.password)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, c)
	}
	return NewDirectory(credentials), nil
}

// NewCredential hashes a plain password for an identity
func NewCredential(identity schema.Identity, password string) (schema.Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return schema.Credential{}, err
	}
	return schema.Credential{Identity: identity, PasswordHash: string(hash)}, nil
}

// Authenticate looks up a matching account. A bad email or password is
// reported as ErrInvalidCredentials.
func (d *Directory) Authenticate(_ context.Context, email, password string) (*schema.Identity, error) {
	for _, c := range d.credentials {
		if !c.MatchesEmail(email) {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}

		identity := c.Identity
		return &identity, nil
	}

	return nil, ErrInvalidCredentials
}

// Lookup returns the current identity of an account id
func (d *Directory) Lookup(id string) (*schema.Identity, bool) {
	for _, c := range d.credentials {
		if c.ID == id {
			identity := c.Identity
			return &identity, true
		}
	}
	return nil, false
}
