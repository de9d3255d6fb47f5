package service

import (
	"context"
	"testing"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func TestExpandOccurrences(t *testing.T) {
	t.Parallel()

	windowStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	event := func(rec domain.Recurrence, start time.Time, dur time.Duration) domain.Event {
		return domain.Event{
			ID:         "evt-1",
			Title:      "standup",
			Start:      start,
			End:        start.Add(dur),
			Recurrence: rec,
		}
	}

	t.Run("non-recurring emits exactly the stored interval", func(t *testing.T) {
		e := event(domain.RecurrenceNone, windowStart.Add(time.Hour), 30*time.Minute)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, window)
		require.Len(t, out, 1)
		require.Equal(t, e.Start, out[0].Start)
		require.Equal(t, e.End, out[0].End)
		require.Equal(t, e.ID, out[0].EventID)
	})

	t.Run("non-recurring outside the window still emits", func(t *testing.T) {
		e := event(domain.RecurrenceNone, windowStart.Add(90*24*time.Hour), time.Hour)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, window)
		require.Len(t, out, 1)
	})

	t.Run("daily over a 30 day window yields 31 occurrences", func(t *testing.T) {
		e := event(domain.RecurrenceDaily, windowStart, time.Hour)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, window)
		require.Len(t, out, 31)

		for i, occ := range out {
			wantStart := windowStart.AddDate(0, 0, i)
			require.Equal(t, wantStart, occ.Start)
			require.Equal(t, time.Hour, occ.End.Sub(occ.Start))
		}
	})

	t.Run("weekly steps seven days", func(t *testing.T) {
		e := event(domain.RecurrenceWeekly, windowStart, 2*time.Hour)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, window)
		require.Len(t, out, 5)
		require.Equal(t, windowStart.AddDate(0, 0, 28), out[4].Start)
	})

	t.Run("events predating the window expand from their own start", func(t *testing.T) {
		start := windowStart.AddDate(0, 0, -3)
		e := event(domain.RecurrenceDaily, start, time.Hour)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, window)
		require.Equal(t, start, out[0].Start)
		require.Len(t, out, 34)
	})

	t.Run("monthly day-31 start rolls into the next month", func(t *testing.T) {
		start := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
		e := event(domain.RecurrenceMonthly, start, time.Hour)

		out := ExpandOccurrences([]domain.Event{e}, start, 45*24*time.Hour)
		require.Len(t, out, 2)
		require.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), out[1].Start)
	})

	t.Run("zero duration preserved", func(t *testing.T) {
		e := event(domain.RecurrenceDaily, windowStart, 0)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, 24*time.Hour)
		require.Len(t, out, 2)
		require.Equal(t, out[0].Start, out[0].End)
	})

	t.Run("unknown recurrence emits once and stops", func(t *testing.T) {
		e := event(domain.Recurrence("fortnightly"), windowStart, time.Hour)

		out := ExpandOccurrences([]domain.Event{e}, windowStart, window)
		require.Len(t, out, 1)
		require.Equal(t, windowStart, out[0].Start)
	})

	t.Run("preserves event order then chronological order", func(t *testing.T) {
		a := event(domain.RecurrenceDaily, windowStart, time.Hour)
		a.ID = "evt-a"
		b := event(domain.RecurrenceNone, windowStart.Add(-time.Hour), time.Hour)
		b.ID = "evt-b"

		out := ExpandOccurrences([]domain.Event{a, b}, windowStart, 24*time.Hour)
		require.Len(t, out, 3)
		require.Equal(t, "evt-a", out[0].EventID)
		require.Equal(t, "evt-a", out[1].EventID)
		require.True(t, out[0].Start.Before(out[1].Start))
		require.Equal(t, "evt-b", out[2].EventID)
	})

	t.Run("no events yields empty non-nil slice", func(t *testing.T) {
		out := ExpandOccurrences(nil, windowStart, window)
		require.NotNil(t, out)
		require.Empty(t, out)
	})
}

func TestEventServiceCreate(t *testing.T) {
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	svc := &EventService{Store: st}

	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("rejects end before start", func(t *testing.T) {
		_, err := svc.Create(ctx, "retro", start, start.Add(-time.Hour), "none")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty recurrence defaults to none", func(t *testing.T) {
		e, err := svc.Create(ctx, "retro", start, start.Add(time.Hour), "")
		require.NoError(t, err)
		require.Equal(t, domain.RecurrenceNone, e.Recurrence)
	})

	t.Run("stored events show up in the expansion", func(t *testing.T) {
		_, err := svc.Create(ctx, "standup", start, start.Add(15*time.Minute), "daily")
		require.NoError(t, err)

		occurrences, err := svc.Occurrences(ctx, start)
		require.NoError(t, err)
		require.NotEmpty(t, occurrences)

		var daily int
		for _, occ := range occurrences {
			if occ.Title == "standup" {
				daily++
			}
		}
		require.Equal(t, 31, daily)
	})
}
