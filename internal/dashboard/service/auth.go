package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/pkg/cryptox"
	"github.com/deskboardhq/deskboard/pkg/idx"
	"github.com/deskboardhq/deskboard/pkg/jwtx"
	"github.com/deskboardhq/deskboard/pkg/slogx"
)

// AuthService authenticates account holders and gates operations by role.
// It is stateless apart from the injected token signer and store handle.
type AuthService struct {
	Store    store.Store
	Tokens   *jwtx.HS256
	TokenTTL time.Duration
}

// Register creates a new account with a one-way salted hash of the secret.
// The role defaults to "user" when absent; unknown role labels are
// rejected. Registration does not log the caller in.
func (s *AuthService) Register(ctx context.Context, name, secret, role string) (domain.PublicUser, error) {
	// Only the name is normalized. The secret is hashed exactly as
	// supplied so login verifies the same bytes.
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(secret) == "" {
		return domain.PublicUser{}, ErrInvalidInput
	}

	parsedRole, ok := domain.ParseRole(strings.TrimSpace(role))
	if !ok {
		return domain.PublicUser{}, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(secret)
	if err != nil {
		return domain.PublicUser{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		PasswordHash: hash,
		Role:         parsedRole,
	}

	// Uniqueness rides on the store's atomic insert; no pre-check lookup,
	// which would just open a race window.
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrNameTaken
		}
		return domain.PublicUser{}, err
	}

	return u.Public(), nil
}

// Login verifies the name/secret pair and issues a signed credential with
// the account's current role embedded. The embedded role is a snapshot;
// later role changes take effect on the next login.
func (s *AuthService) Login(ctx context.Context, name, secret string) (string, domain.PublicUser, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || secret == "" {
		return "", domain.PublicUser{}, ErrInvalidInput
	}

	u, err := s.Store.Users().GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same error as a wrong secret so callers can't probe for
			// account existence.
			return "", domain.PublicUser{}, ErrInvalidCredentials
		}
		return "", domain.PublicUser{}, err
	}

	if cryptox.VerifyPassword(secret, u.PasswordHash) != nil {
		log.Info("login failed", "name", name)
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewClaims(u.ID, u.Name, u.Role.String(), s.Tokens.Issuer(), ttl, time.Now())
	token, err := s.Tokens.Sign(claims)
	if err != nil {
		return "", domain.PublicUser{}, err
	}

	return token, u.Public(), nil
}

// Authorize verifies a serialized credential and, when required is
// non-empty, enforces the role gate: the embedded role must satisfy the
// requirement, with admin overriding any requirement.
func (s *AuthService) Authorize(token string, required domain.Role) (jwtx.Claims, error) {
	claims, err := s.Tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		return jwtx.Claims{}, ErrInvalidCredentials
	}

	if required != "" && !domain.Role(claims.Role).Satisfies(required) {
		return jwtx.Claims{}, ErrForbidden
	}

	return claims, nil
}
