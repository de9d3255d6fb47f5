package service

import (
	"context"
	"testing"

	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/internal/dashboard/store/drivers/sqlite"
	"github.com/deskboardhq/deskboard/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, *ActivityService) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &UserService{Store: st}, &ActivityService{Store: st}
}

func TestUserServiceCRUD(t *testing.T) {
	ctx := context.Background()
	svc, activity := newUserService(t)

	created, err := svc.Create(ctx, "root", "alice", "hunter2", "user", "active")
	require.NoError(t, err)

	t.Run("create logs an activity entry", func(t *testing.T) {
		entries, err := activity.Recent(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "root", entries[0].User)
		require.Equal(t, "create", entries[0].Action)
		require.Contains(t, entries[0].Details, "alice")
	})

	t.Run("secret is hashed exactly as supplied", func(t *testing.T) {
		_, err := svc.Create(ctx, "root", "spacey", " welcome1 ", "user", "")
		require.NoError(t, err)

		stored, err := svc.Store.Users().GetUserByName(ctx, "spacey")
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword(" welcome1 ", stored.PasswordHash))
		require.ErrorIs(t, cryptox.VerifyPassword("welcome1", stored.PasswordHash), cryptox.ErrMismatch)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		_, err := svc.Create(ctx, "root", "alice", "other", "user", "")
		require.ErrorIs(t, err, ErrNameTaken)
	})

	t.Run("get returns the public projection", func(t *testing.T) {
		u, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", u.Name)
		require.Equal(t, "active", u.Status)
	})

	t.Run("update with nil fields leaves values untouched", func(t *testing.T) {
		status := "suspended"
		u, err := svc.Update(ctx, "root", created.ID, UserUpdate{Status: &status})
		require.NoError(t, err)
		require.Equal(t, "alice", u.Name)
		require.Equal(t, "suspended", u.Status)
	})

	t.Run("update rejects unknown role", func(t *testing.T) {
		role := "overlord"
		_, err := svc.Update(ctx, "root", created.ID, UserUpdate{Role: &role})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("update of a missing account is not found", func(t *testing.T) {
		name := "ghost"
		_, err := svc.Update(ctx, "root", "no-such-id", UserUpdate{Name: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes the account and logs it", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "root", created.ID))

		_, err := svc.Get(ctx, created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		entries, err := activity.Recent(ctx)
		require.NoError(t, err)
		require.Equal(t, "delete", entries[0].Action)
	})

	t.Run("delete of a missing account is not found", func(t *testing.T) {
		err := svc.Delete(ctx, "root", created.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
