package sqlite

import (
	"context"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
)

type eventsRepo struct {
	q queryer
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO events (id, title, start_at, end_at, recurrence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Start.UTC(), e.End.UTC(), string(e.Recurrence), time.Now().UTC())
	return err
}

func (r *eventsRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, title, start_at, end_at, recurrence, created_at FROM events ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var recurrence string
		if err := rows.Scan(&e.ID, &e.Title, &e.Start, &e.End, &recurrence, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Recurrence = domain.Recurrence(recurrence)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventsRepo) CountEvents(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}
