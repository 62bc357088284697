package contract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dorascope/dorascope/schema"
)

// FileProvider implements the EventProvider interface by reading delivery
// events from a local JSON file instead of a forge API. This supports
// air-gapped environments and deterministic integration tests.
//
// The file holds either a single event bundle or an array of bundles,
// one per repository.
type FileProvider struct {
	path string

	once    sync.Once
	bundles []schema.EventBundle
	loadErr error
}

var _ EventProvider = &FileProvider{} // Compile-time check

// NewFileProvider creates a provider backed by the given JSON file.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// FetchEvents implements the EventProvider interface.
// A repository missing from the file yields an empty bundle rather than
// an error, matching an API response for a repository with no activity.
func (p *FileProvider) FetchEvents(_ context.Context, repository string, since, until time.Time) (schema.EventBundle, error) {
	p.once.Do(p.load)
	if p.loadErr != nil {
		return schema.EventBundle{}, p.loadErr
	}

	for _, bundle := range p.bundles {
		if bundle.Repository == repository {
			return filterBundleWindow(bundle, since, until), nil
		}
	}
	return schema.EventBundle{Repository: repository}, nil
}

func (p *FileProvider) load() {
	data, err := os.ReadFile(p.path)
	if err != nil {
		p.loadErr = fmt.Errorf("cannot read events file: %w", err)
		return
	}

	var bundles []schema.EventBundle
	if err := json.Unmarshal(data, &bundles); err == nil {
		p.bundles = bundles
		return
	}

	var single schema.EventBundle
	if err := json.Unmarshal(data, &single); err != nil {
		p.loadErr = fmt.Errorf("events file %s holds neither a bundle nor a bundle list: %w", p.path, err)
		return
	}
	p.bundles = []schema.EventBundle{single}
}

// filterBundleWindow keeps the events whose creation time falls inside [since, until].
func filterBundleWindow(bundle schema.EventBundle, since, until time.Time) schema.EventBundle {
	out := schema.EventBundle{Repository: bundle.Repository}
	for _, pr := range bundle.PullRequests {
		if inWindow(pr.CreatedAt, since, until) {
			out.PullRequests = append(out.PullRequests, pr)
		}
	}
	for _, deployment := range bundle.Deployments {
		if inWindow(deployment.CreatedAt, since, until) {
			out.Deployments = append(out.Deployments, deployment)
		}
	}
	for _, run := range bundle.WorkflowRuns {
		if inWindow(run.CreatedAt, since, until) {
			out.WorkflowRuns = append(out.WorkflowRuns, run)
		}
	}
	for _, issue := range bundle.Issues {
		if inWindow(issue.CreatedAt, since, until) {
			out.Issues = append(out.Issues, issue)
		}
	}
	return out
}

func inWindow(t time.Time, since, until time.Time) bool {
	if !since.IsZero() && t.Before(since) {
		return false
	}
	if !until.IsZero() && t.After(until) {
		return false
	}
	return true
}
