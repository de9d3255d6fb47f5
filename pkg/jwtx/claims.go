package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default credential lifetime. Tokens carry a role
// snapshot from issuance time, so a long-but-bounded window keeps stale
// roles from living forever.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the credential claims shared across the service. The embedded
// role reflects the account's role at issuance; role changes take effect on
// the next login.
type Claims struct {
	jwt.RegisteredClaims

	// Name is the account's unique human-readable name.
	Name string `json:"name,omitempty"`

	// Role is the account role at issuance time ("admin" or "user").
	Role string `json:"role,omitempty"`
}

// NewClaims builds minimally-correct credential claims for an account.
func NewClaims(subject, name, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: name,
		Role: role,
	}
}

// ValidateIssuer checks the issuer matches the expected value. An empty
// expected value enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
