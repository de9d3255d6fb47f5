package service

import (
	"context"
	"strings"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
	"github.com/deskboardhq/deskboard/pkg/idx"
)

// DefaultExpandWindow is the calendar look-ahead used when listing
// occurrences.
const DefaultExpandWindow = 30 * 24 * time.Hour

// EventService stores calendar events and projects them into display
// occurrences. Expansion is a read-only projection; stored records are
// never touched.
type EventService struct {
	Store  store.Store
	Window time.Duration
}

// Create validates and persists a calendar event. End must not precede
// Start. Recurrence labels outside the known set are stored as given; the
// expansion treats them as single-shot (see ExpandOccurrences).
func (s *EventService) Create(ctx context.Context, title string, start, end time.Time, recurrence string) (domain.Event, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return domain.Event{}, ErrInvalidInput
	}

	rec := domain.Recurrence(strings.TrimSpace(recurrence))
	if rec == "" {
		rec = domain.RecurrenceNone
	}

	e := domain.Event{
		ID:         idx.New().String(),
		Title:      strings.TrimSpace(title),
		Start:      start,
		End:        end,
		Recurrence: rec,
	}
	if err := s.Store.Events().CreateEvent(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

// Occurrences lists all stored events expanded over [now, now+window].
func (s *EventService) Occurrences(ctx context.Context, now time.Time) ([]domain.Occurrence, error) {
	events, err := s.Store.Events().ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	window := s.Window
	if window <= 0 {
		window = DefaultExpandWindow
	}
	return ExpandOccurrences(events, now, window), nil
}

// ExpandOccurrences converts stored events into the concrete occurrences
// falling inside the look-ahead window [windowStart, windowStart+windowLength].
//
// A non-recurring event yields exactly its stored start/end. A recurring
// event is walked from its own stored start, not from windowStart, so
// occurrences before the window are included when the event predates it;
// the backward inclusion is intentional and matches the data the dashboard
// has always shown. Each occurrence preserves the stored duration. The
// cursor steps by one day, seven days, or one calendar month; month steps
// use time.AddDate normalization, so a day-31 start rolls into the next
// month when the target month is shorter (Jan 31 -> Mar 3 off a 28-day
// February). Unrecognized recurrence labels emit the first occurrence and
// stop, a deliberate fail-soft rather than an error.
//
// The result is ordered by input event order, then chronologically within
// each event's own expansion. Nothing is persisted.
func ExpandOccurrences(events []domain.Event, windowStart time.Time, windowLength time.Duration) []domain.Occurrence {
	windowEnd := windowStart.Add(windowLength)

	out := make([]domain.Occurrence, 0, len(events))
	for _, e := range events {
		if e.Recurrence == domain.RecurrenceNone {
			out = append(out, occurrenceAt(e, e.Start, e.End))
			continue
		}

		duration := e.End.Sub(e.Start)
		cursor := e.Start
		for !cursor.After(windowEnd) {
			out = append(out, occurrenceAt(e, cursor, cursor.Add(duration)))

			next, ok := stepCursor(cursor, e.Recurrence)
			if !ok {
				break
			}
			cursor = next
		}
	}
	return out
}

// stepCursor advances one recurrence interval. ok is false for labels
// outside the known set, ending that event's expansion.
func stepCursor(cursor time.Time, rec domain.Recurrence) (time.Time, bool) {
	switch rec {
	case domain.RecurrenceDaily:
		return cursor.AddDate(0, 0, 1), true
	case domain.RecurrenceWeekly:
		return cursor.AddDate(0, 0, 7), true
	case domain.RecurrenceMonthly:
		return cursor.AddDate(0, 1, 0), true
	default:
		return cursor, false
	}
}

func occurrenceAt(e domain.Event, start, end time.Time) domain.Occurrence {
	return domain.Occurrence{
		EventID:    e.ID,
		Title:      e.Title,
		Start:      start,
		End:        end,
		Recurrence: string(e.Recurrence),
	}
}
