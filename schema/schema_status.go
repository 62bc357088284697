package schema

import "time"

// HistoryStatus represents the status of the metric history store.
type HistoryStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalRecords    int       `json:"total_records"`
	RepositoryCount int       `json:"repository_count"`
	NewestDate      time.Time `json:"newest_date"`
	OldestDate      time.Time `json:"oldest_date"`
}
