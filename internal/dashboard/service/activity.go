package service

import (
	"context"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
)

// RecentActivityLimit caps the activity feed.
const RecentActivityLimit = 100

// ActivityService reads the append-only activity log.
type ActivityService struct {
	Store store.Store
}

// Recent returns the newest entries, newest first, capped at
// RecentActivityLimit.
func (s *ActivityService) Recent(ctx context.Context) ([]domain.ActivityEntry, error) {
	return s.Store.Activity().ListRecent(ctx, RecentActivityLimit)
}
