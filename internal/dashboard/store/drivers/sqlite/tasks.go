package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
)

type tasksRepo struct {
	q queryer
}

const taskColumns = `id, content, status, attachments, assigned_to, due_date, priority, labels, checklist, created_at, updated_at`

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	attachments, labels, checklist, err := marshalTaskLists(t)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.q.ExecContext(ctx,
		`INSERT INTO tasks (id, content, status, attachments, assigned_to, due_date, priority, labels, checklist, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Content, t.Status, attachments, t.AssignedTo,
		mapOptionalTime(t.DueDate), t.Priority, labels, checklist, now, now)
	return err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	attachments, labels, checklist, err := marshalTaskLists(t)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx,
		`UPDATE tasks
		 SET content = ?, status = ?, attachments = ?, assigned_to = ?, due_date = ?,
		     priority = ?, labels = ?, checklist = ?, updated_at = ?
		 WHERE id = ?`,
		t.Content, t.Status, attachments, t.AssignedTo, mapOptionalTime(t.DueDate),
		t.Priority, labels, checklist, time.Now().UTC(), t.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// AppendAttachment appends in place with json_insert. A single statement,
// so two concurrent uploads can't clobber each other's path.
func (r *tasksRepo) AppendAttachment(ctx context.Context, taskID, path string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tasks
		 SET attachments = json_insert(attachments, '$[#]', ?), updated_at = ?
		 WHERE id = ?`,
		path, time.Now().UTC(), taskID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
}

func (r *tasksRepo) CountByPriority(ctx context.Context) (map[string]int, error) {
	return r.countGrouped(ctx, `SELECT priority, COUNT(*) FROM tasks GROUP BY priority`)
}

func (r *tasksRepo) countGrouped(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func marshalTaskLists(t domain.Task) (attachments, labels, checklist []byte, err error) {
	if attachments, err = json.Marshal(emptyIfNil(t.Attachments)); err != nil {
		return nil, nil, nil, err
	}
	if labels, err = json.Marshal(emptyIfNil(t.Labels)); err != nil {
		return nil, nil, nil, err
	}
	if t.Checklist == nil {
		t.Checklist = []domain.ChecklistItem{}
	}
	if checklist, err = json.Marshal(t.Checklist); err != nil {
		return nil, nil, nil, err
	}
	return attachments, labels, checklist, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	var attachments, labels, checklist []byte
	var due sql.NullTime

	err := row.Scan(&t.ID, &t.Content, &t.Status, &attachments, &t.AssignedTo,
		&due, &t.Priority, &labels, &checklist, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.DueDate = mapNullTimePtr(due)
	if err := json.Unmarshal(attachments, &t.Attachments); err != nil {
		return domain.Task{}, err
	}
	if err := json.Unmarshal(labels, &t.Labels); err != nil {
		return domain.Task{}, err
	}
	if err := json.Unmarshal(checklist, &t.Checklist); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}
