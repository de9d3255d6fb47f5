package sqlite

import (
	"database/sql"

	"github.com/deskboardhq/deskboard/internal/dashboard/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Users() store.Users       { return &usersRepo{q: t.tx} }
func (t *txStore) Tasks() store.Tasks       { return &tasksRepo{q: t.tx} }
func (t *txStore) Events() store.Events     { return &eventsRepo{q: t.tx} }
func (t *txStore) Activity() store.Activity { return &activityRepo{q: t.tx} }
