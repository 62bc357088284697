// Package github collects delivery events from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// pageSize is the page size used for every list call.
const pageSize = 100

// Client implements the contract.EventProvider interface against the GitHub
// REST API. It normalizes pull requests, deployments, workflow runs and
// issues into schema events, applying the configured environment, label and
// base branch filters along the way.
type Client struct {
	gh            *github.Client
	environment   string
	excludeLabels []string
	baseBranches  []string
	detail        bool
}

var _ contract.EventProvider = &Client{} // Compile-time check

// NewClient builds a GitHub-backed event provider from the runtime config.
// An empty token falls back to anonymous access, which works for public
// repositories under much tighter rate limits.
func NewClient(cfg *contract.Config) (*Client, error) {
	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	ghClient := github.NewClient(httpClient)
	if cfg.APIBaseURL != "" {
		var err error
		ghClient, err = github.NewEnterpriseClient(cfg.APIBaseURL, cfg.APIBaseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", cfg.APIBaseURL, err)
		}
	}

	return &Client{
		gh:            ghClient,
		environment:   cfg.Environment,
		excludeLabels: cfg.ExcludeLabels,
		baseBranches:  cfg.BaseBranches,
		detail:        cfg.Detail,
	}, nil
}

// FetchEvents implements the contract.EventProvider interface.
func (c *Client) FetchEvents(ctx context.Context, repository string, since, until time.Time) (schema.EventBundle, error) {
	owner, name, ok := schema.SplitRepo(repository)
	if !ok {
		return schema.EventBundle{}, fmt.Errorf("invalid repository %q. Expected owner/name format", repository)
	}

	bundle := schema.EventBundle{Repository: repository}

	prs, err := c.fetchPullRequests(ctx, repository, owner, name, since, until)
	if err != nil {
		return schema.EventBundle{}, fmt.Errorf("pull requests for %s: %w", repository, err)
	}
	bundle.PullRequests = prs

	deployments, err := c.fetchDeployments(ctx, repository, owner, name, since, until)
	if err != nil {
		return schema.EventBundle{}, fmt.Errorf("deployments for %s: %w", repository, err)
	}
	bundle.Deployments = deployments

	runs, err := c.fetchWorkflowRuns(ctx, repository, owner, name, since, until)
	if err != nil {
		return schema.EventBundle{}, fmt.Errorf("workflow runs for %s: %w", repository, err)
	}
	bundle.WorkflowRuns = runs

	issues, err := c.fetchIssues(ctx, repository, owner, name, since, until)
	if err != nil {
		return schema.EventBundle{}, fmt.Errorf("issues for %s: %w", repository, err)
	}
	bundle.Issues = issues

	return bundle, nil
}
