// Package schema has the event models, metric records and shared enums for
// all parts of dorascope.
package schema

import "time"

// PullRequest is a normalized snapshot of one pull request as supplied by an
// event provider. All times are UTC; a nil pointer time means the event never
// happened.
type PullRequest struct {
	ID           int64      `json:"id"`                 // Host-assigned unique identifier
	Number       int        `json:"number"`             // Repository-local pull request number
	Title        string     `json:"title"`              // Pull request title
	State        string     `json:"state"`              // Lifecycle state, either open or closed
	CreatedAt    time.Time  `json:"createdAt"`          // When the pull request was opened
	MergedAt     *time.Time `json:"mergedAt,omitempty"` // When the pull request was merged (nullable)
	ClosedAt     *time.Time `json:"closedAt,omitempty"` // When the pull request was closed (nullable)
	Author       string     `json:"author"`             // Login of the pull request author
	Repository   string     `json:"repository"`         // Owner/name the pull request belongs to
	BaseRefName  string     `json:"baseRefName"`        // Branch the pull request targets
	HeadRefName  string     `json:"headRefName"`        // Branch the pull request comes from
	Additions    int        `json:"additions"`          // Lines added
	Deletions    int        `json:"deletions"`          // Lines deleted
	ChangedFiles int        `json:"changedFiles"`       // Files touched

	FirstCommitAt    *time.Time `json:"firstCommitAt,omitempty"` // Oldest commit time on the branch (nullable)
	FirstReviewAt    *time.Time `json:"firstReviewAt,omitempty"` // Earliest submitted review time (nullable)
	ReviewCount      int        `json:"reviewCount"`             // Number of submitted reviews
	ChangesRequested int        `json:"changesRequested"`        // Reviews that requested changes
}

// Merged reports whether the pull request has a recorded merge time.
func (p *PullRequest) Merged() bool {
	return p.MergedAt != nil
}

// Deployment is one deployment attempt against an environment.
type Deployment struct {
	ID          int64     `json:"id"`          // Host-assigned unique identifier
	SHA         string    `json:"sha"`         // Commit the deployment shipped
	Environment string    `json:"environment"` // Target environment name
	Status      string    `json:"status"`      // Terminal state: success, failure, error, inactive or pending
	CreatedAt   time.Time `json:"createdAt"`   // When the deployment was created
	UpdatedAt   time.Time `json:"updatedAt"`   // When the deployment last changed
	Repository  string    `json:"repository"`  // Owner/name the deployment belongs to
}

// WorkflowRun is one CI workflow execution. Runs feed the calculators only
// when a repository has no deployment data at all.
type WorkflowRun struct {
	ID         int64     `json:"id"`         // Host-assigned unique identifier
	Name       string    `json:"name"`       // Workflow name
	Status     string    `json:"status"`     // Lifecycle state, such as completed or in_progress
	Conclusion string    `json:"conclusion"` // Terminal outcome: success, failure, cancelled or skipped
	CreatedAt  time.Time `json:"createdAt"`  // When the run started
	UpdatedAt  time.Time `json:"updatedAt"`  // When the run last changed
	Repository string    `json:"repository"` // Owner/name the run belongs to
}

// Issue is a normalized snapshot of one issue. Issues add context to reports
// but do not feed the four DORA calculators.
type Issue struct {
	ID         int64      `json:"id"`                 // Host-assigned unique identifier
	Number     int        `json:"number"`             // Repository-local issue number
	Title      string     `json:"title"`              // Issue title
	State      string     `json:"state"`              // Lifecycle state, either open or closed
	CreatedAt  time.Time  `json:"createdAt"`          // When the issue was opened
	ClosedAt   *time.Time `json:"closedAt,omitempty"` // When the issue was closed (nullable)
	Labels     []string   `json:"labels,omitempty"`   // Label names attached to the issue
	Repository string     `json:"repository"`         // Owner/name the issue belongs to
}

// Closed reports whether the issue has a recorded close time.
func (i *Issue) Closed() bool {
	return i.ClosedAt != nil
}

// EventBundle groups every event fetched for one repository and reporting
// window. Calculators receive the slices as-is and treat them as pre-filtered.
type EventBundle struct {
	Repository   string        `json:"repository"`
	PullRequests []PullRequest `json:"pullRequests"`
	Deployments  []Deployment  `json:"deployments"`
	WorkflowRuns []WorkflowRun `json:"workflowRuns"`
	Issues       []Issue       `json:"issues,omitempty"`
}
