// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/dorascope/dorascope/schema"
)

// EventProvider defines the necessary operations for collecting delivery events.
// This allows the core reporting logic to be tested without needing a real forge API.
type EventProvider interface {
	// FetchEvents returns the pull requests, deployments, workflow runs and
	// issues recorded for a repository within the [since, until] window.
	FetchEvents(ctx context.Context, repository string, since, until time.Time) (schema.EventBundle, error)
}

// HistoryManager defines the interface for managing history stores.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking metric snapshots over time.
type HistoryStore interface {
	// UpsertMetrics stores or replaces the metric record for one repository and date
	UpsertMetrics(record schema.DevOpsMetrics) error

	// GetMetricsSince returns stored records for the given repositories, newest first.
	// A zero since time places no lower bound on the record dates.
	GetMetricsSince(repositories []string, since time.Time) ([]schema.DevOpsMetrics, error)

	// GetAllMetrics returns every stored record, newest first
	GetAllMetrics() ([]schema.DevOpsMetrics, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// DeleteAll removes every stored record
	DeleteAll() error

	// Close closes the underlying connection
	Close() error
}

// Notifier delivers a health summary to an external channel, such as a
// Slack or Teams incoming webhook.
type Notifier interface {
	Send(ctx context.Context, result schema.HealthResult) error
}
