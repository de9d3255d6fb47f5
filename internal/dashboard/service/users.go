package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/pkg/cryptox"
	"github.com/deskboardhq/deskboard/pkg/idx"
)

// UserService covers the admin user-management surface. Mutations record
// an activity entry in the same transaction as the change.
type UserService struct {
	Store store.Store
}

// UserUpdate carries the mutable account fields. Nil pointers leave the
// current value untouched.
type UserUpdate struct {
	Name   *string
	Role   *string
	Status *string
}

// List returns public projections of every account.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// Get returns one account's public projection.
func (s *UserService) Get(ctx context.Context, id string) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// Create adds an account on behalf of an administrator and logs the
// action. Same validation and uniqueness rules as self-registration.
func (s *UserService) Create(ctx context.Context, actor, name, secret, role, status string) (domain.PublicUser, error) {
	// The secret is hashed exactly as supplied; see AuthService.Register.
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
		Status:       strings.TrimSpace(status),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.Activity().AppendEntry(ctx, activityEntry(actor, "create",
			fmt.Sprintf("Created user %s", u.Name)))
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrNameTaken
		}
		return domain.PublicUser{}, err
	}

	return u.Public(), nil
}

// Update mutates name, role, or status of an account and logs the action.
func (s *UserService) Update(ctx context.Context, actor, id string, upd UserUpdate) (domain.PublicUser, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return domain.PublicUser{}, ErrInvalidInput
		}
		u.Name = name
	}
	if upd.Role != nil {
		role, ok := domain.ParseRole(strings.TrimSpace(*upd.Role))
		if !ok {
			return domain.PublicUser{}, ErrInvalidInput
		}
		u.Role = role
	}
	if upd.Status != nil {
		u.Status = strings.TrimSpace(*upd.Status)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		return tx.Activity().AppendEntry(ctx, activityEntry(actor, "update",
			fmt.Sprintf("Updated user %s", u.Name)))
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrNameTaken
		}
		return domain.PublicUser{}, err
	}

	return u.Public(), nil
}

// Delete removes an account and logs the action.
func (s *UserService) Delete(ctx context.Context, actor, id string) error {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().DeleteUser(ctx, id); err != nil {
			return err
		}
		return tx.Activity().AppendEntry(ctx, activityEntry(actor, "delete",
			fmt.Sprintf("Deleted user %s", u.Name)))
	})
}

func activityEntry(actor, action, details string) domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:        idx.New().String(),
		User:      actor,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}
