package domain

import "time"

// ActivityEntry records who did what on the admin surfaces. Entries are
// append-only.
type ActivityEntry struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Action    string    `json:"action"` // create, update, delete
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyticsSummary aggregates counts for the dashboard overview.
type AnalyticsSummary struct {
	UsersByRole      map[string]int `json:"users_by_role"`
	TasksByStatus    map[string]int `json:"tasks_by_status"`
	TasksByPriority  map[string]int `json:"tasks_by_priority"`
	TotalEvents      int            `json:"total_events"`
	RecentActivities int            `json:"recent_activities"`
}
