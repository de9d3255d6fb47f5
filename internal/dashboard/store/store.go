package store

import (
	"context"
	"errors"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Tasks() Tasks
	Events() Events
	Activity() Activity

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Users() Users
	Tasks() Tasks
	Events() Events
	Activity() Activity
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByName looks a user up by its unique name. Used during login.
	GetUserByName(ctx context.Context, name string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the name is taken; uniqueness is
	// enforced by the store in a single atomic insert.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser mutates name, role, and status, bumping updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes the account record.
	DeleteUser(ctx context.Context, id string) error

	// ListUsers returns all users ordered by creation (id order).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CountByRole aggregates user counts keyed by role.
	CountByRole(ctx context.Context) (map[string]int, error)
}

type Tasks interface {
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, t domain.Task) error
	UpdateTask(ctx context.Context, t domain.Task) error
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// AppendAttachment adds a stored file path to the task's attachment
	// list, bumping updated_at.
	AppendAttachment(ctx context.Context, taskID, path string) error

	// CountByStatus and CountByPriority feed the analytics summary.
	CountByStatus(ctx context.Context) (map[string]int, error)
	CountByPriority(ctx context.Context) (map[string]int, error)
}

type Events interface {
	CreateEvent(ctx context.Context, e domain.Event) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CountEvents(ctx context.Context) (int, error)
}

type Activity interface {
	// AppendEntry records an activity log line.
	AppendEntry(ctx context.Context, e domain.ActivityEntry) error

	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)

	// CountSince counts entries recorded at or after the given instant.
	CountSince(ctx context.Context, since time.Time) (int, error)
}
