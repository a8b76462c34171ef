package auth

import (
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/bitmark-inc/community-aid/schema"
)

var (
	ErrInvalidToken = fmt.Errorf("invalid token")
)

type identityClaims struct {
	jwt.StandardClaims
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  schema.Role `json:"role"`
}

// TokenIssuer signs and verifies session tokens with a shared secret
type TokenIssuer struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, expire time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expire: expire,
		now:    time.Now,
	}
}

func (t *TokenIssuer) Issue(identity schema.Identity) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, identityClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.expire).Unix(),
			Id:        uuid.New().String(),
		},
		Name:  identity.Name,
		Email: identity.Email,
		Role:  identity.Role,
	})

	return token.SignedString(t.secret)
}

// Verify parses a token and returns the identity it was issued for
func (t *TokenIssuer) Verify(tokenString string) (*schema.Identity, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &schema.Identity{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
