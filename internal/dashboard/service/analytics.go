package service

import (
	"context"
	"time"

	"github.com/deskboardhq/deskboard/internal/dashboard/domain"
	"github.com/deskboardhq/deskboard/internal/dashboard/store"
)

// recentActivityWindow bounds the "recent activity" figure on the
// analytics summary.
const recentActivityWindow = 7 * 24 * time.Hour

// AnalyticsService aggregates store counts for the dashboard overview.
type AnalyticsService struct {
	Store store.Store
}

// Summary assembles the analytics counters in a single pass over the
// aggregate queries.
func (s *AnalyticsService) Summary(ctx context.Context) (domain.AnalyticsSummary, error) {
	var summary domain.AnalyticsSummary

	usersByRole, err := s.Store.Users().CountByRole(ctx)
	if err != nil {
		return summary, err
	}
	tasksByStatus, err := s.Store.Tasks().CountByStatus(ctx)
	if err != nil {
		return summary, err
	}
	tasksByPriority, err := s.Store.Tasks().CountByPriority(ctx)
	if err != nil {
		return summary, err
	}
	totalEvents, err := s.Store.Events().CountEvents(ctx)
	if err != nil {
		return summary, err
	}
	recent, err := s.Store.Activity().CountSince(ctx, time.Now().Add(-recentActivityWindow))
	if err != nil {
		return summary, err
	}

	summary = domain.AnalyticsSummary{
		UsersByRole:      usersByRole,
		TasksByStatus:    tasksByStatus,
		TasksByPriority:  tasksByPriority,
		TotalEvents:      totalEvents,
		RecentActivities: recent,
	}
	return summary, nil
}
