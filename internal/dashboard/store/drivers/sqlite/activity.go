package sqlite

import (
	"context"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
)

type activityRepo struct {
	q queryer
}

func (r *activityRepo) AppendEntry(ctx context.Context, e domain.ActivityEntry) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO activity_log (id, actor, action, details, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.User, e.Action, e.Details, e.Timestamp.UTC())
	return err
}

func (r *activityRepo) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, actor, action, details, timestamp
		 FROM activity_log ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.User, &e.Action, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *activityRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_log WHERE timestamp >= ?`, since.UTC()).Scan(&n)
	return n, err
}
