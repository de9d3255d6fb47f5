package idx_test

import (
	"testing"
	"time"

	"github.com/deskboardhq/deskboard/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.Len(t, a.String(), 26)
	require.NotEqual(t, a, b)
	require.Less(t, a.String(), b.String(), "ids generated later sort later")
}

func TestNewAt(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	id := idx.NewAt(at)

	require.True(t, at.Equal(id.Time()), "embedded timestamp should round-trip")
}

func TestParse(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := idx.New()
		parsed, err := idx.Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := idx.Parse("")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("rejects malformed", func(t *testing.T) {
		_, err := idx.Parse("not-a-ulid")
		require.ErrorIs(t, err, idx.ErrInvalid)
	})

	t.Run("must parse panics on invalid", func(t *testing.T) {
		require.Panics(t, func() { idx.MustParse("nope") })
	})
}
