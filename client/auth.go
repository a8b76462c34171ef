package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/schema"
)

// Auth is the identity provider of the listing service
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

// Login exchanges credentials for an identity and a session token.
// Rejected credentials are reported as auth.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (*schema.Identity, string, error) {
	var resp struct {
		Identity schema.Identity `json:"identity"`
		Token    string          `json:"token"`
	}

	err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}

	return &resp.Identity, resp.Token, nil
}

func (a *Auth) Authenticate(ctx context.Context, email, password string) (*schema.Identity, error) {
	identity, _, err := a.Login(ctx, email, password)
	return identity, err
}

// Verify resolves a session token to the current identity of its holder
func (a *Auth) Verify(ctx context.Context, token string) (*schema.Identity, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	var identity schema.Identity
	if err := a.c.do(ctx, http.MethodGet, "/api/auth/me", header, nil, &identity); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return &identity, nil
}
