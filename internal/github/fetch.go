package github

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/go-github/v39/github"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// fetchPullRequests lists pull requests created inside the window, newest
// first, stopping pagination as soon as a page crosses the window start.
func (c *Client) fetchPullRequests(ctx context.Context, repository, owner, name string, since, until time.Time) ([]schema.PullRequest, error) {
	var out []schema.PullRequest
	opts := &github.PullRequestListOptions{
		State:       "all",
		Sort:        "created",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
		}

		done := false
		for _, pr := range prs {
			createdAt := pr.GetCreatedAt()
			if createdAt.After(until) {
				continue
			}
			if createdAt.Before(since) {
				// Sorted by creation descending, so the rest is older.
				done = true
				break
			}
			if c.skipPullRequest(pr) {
				continue
			}

			converted := convertPullRequest(pr, repository)
			if c.detail {
				c.attachPullRequestDetail(ctx, owner, name, &converted)
			}
			out = append(out, converted)
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// skipPullRequest applies the configured label exclusions and, when set, the
// base branch allowlist.
func (c *Client) skipPullRequest(pr *github.PullRequest) bool {
	for _, label := range pr.Labels {
		for _, excluded := range c.excludeLabels {
			if strings.EqualFold(label.GetName(), excluded) {
				return true
			}
		}
	}

	if len(c.baseBranches) > 0 {
		base := pr.GetBase().GetRef()
		allowed := slices.ContainsFunc(c.baseBranches, func(branch string) bool {
			return strings.EqualFold(branch, base)
		})
		if !allowed {
			return true
		}
	}

	return false
}

func convertPullRequest(pr *github.PullRequest, repository string) schema.PullRequest {
	return schema.PullRequest{
		ID:           pr.GetID(),
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		State:        pr.GetState(),
		CreatedAt:    pr.GetCreatedAt(),
		MergedAt:     pr.MergedAt,
		ClosedAt:     pr.ClosedAt,
		Author:       pr.GetUser().GetLogin(),
		Repository:   repository,
		BaseRefName:  pr.GetBase().GetRef(),
		HeadRefName:  pr.GetHead().GetRef(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
	}
}

// attachPullRequestDetail enriches a converted pull request with the fields
// the list endpoint omits: diff sizes, review timings and the first commit.
// Lookup failures degrade to a warning so one flaky pull request cannot sink
// the whole report.
func (c *Client) attachPullRequestDetail(ctx context.Context, owner, name string, pr *schema.PullRequest) {
	full, _, err := c.gh.PullRequests.Get(ctx, owner, name, pr.Number)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("pull request detail for %s#%d", pr.Repository, pr.Number), err)
	} else {
		pr.Additions = full.GetAdditions()
		pr.Deletions = full.GetDeletions()
		pr.ChangedFiles = full.GetChangedFiles()
	}

	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, owner, name, pr.Number, &github.ListOptions{PerPage: pageSize})
	if err != nil {
		contract.LogWarn(fmt.Sprintf("reviews for %s#%d", pr.Repository, pr.Number), err)
	} else {
		applyReviews(pr, reviews)
	}

	commits, _, err := c.gh.PullRequests.ListCommits(ctx, owner, name, pr.Number, &github.ListOptions{PerPage: 1})
	if err != nil {
		contract.LogWarn(fmt.Sprintf("commits for %s#%d", pr.Repository, pr.Number), err)
	} else if len(commits) > 0 {
		// Pull request commits arrive oldest first, so one page suffices.
		date := commits[0].GetCommit().GetAuthor().GetDate()
		if !date.IsZero() {
			pr.FirstCommitAt = &date
		}
	}
}

// applyReviews folds submitted reviews into the pull request snapshot.
// Pending reviews and self-reviews carry no signal and are skipped.
func applyReviews(pr *schema.PullRequest, reviews []*github.PullRequestReview) {
	for _, review := range reviews {
		state := review.GetState()
		if state == "PENDING" {
			continue
		}
		if review.GetUser().GetLogin() == pr.Author {
			continue
		}

		pr.ReviewCount++
		if state == "CHANGES_REQUESTED" {
			pr.ChangesRequested++
		}

		submitted := review.GetSubmittedAt()
		if pr.FirstReviewAt == nil || submitted.Before(*pr.FirstReviewAt) {
			at := submitted
			pr.FirstReviewAt = &at
		}
	}
}

// fetchDeployments lists deployments created inside the window and resolves
// each one to its most recent status.
func (c *Client) fetchDeployments(ctx context.Context, repository, owner, name string, since, until time.Time) ([]schema.Deployment, error) {
	var out []schema.Deployment
	opts := &github.DeploymentsListOptions{
		Environment: c.environment,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		deployments, resp, err := c.gh.Repositories.ListDeployments(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch deployments: %w", err)
		}

		done := false
		for _, deployment := range deployments {
			createdAt := deployment.GetCreatedAt().Time
			if createdAt.After(until) {
				continue
			}
			if createdAt.Before(since) {
				// Deployments arrive newest first, so the rest is older.
				done = true
				break
			}
			out = append(out, schema.Deployment{
				ID:          deployment.GetID(),
				SHA:         deployment.GetSHA(),
				Environment: deployment.GetEnvironment(),
				Status:      c.latestDeploymentStatus(ctx, owner, name, deployment.GetID()),
				CreatedAt:   createdAt,
				UpdatedAt:   deployment.GetUpdatedAt().Time,
				Repository:  repository,
			})
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// latestDeploymentStatus returns the newest status state for a deployment.
// Deployments without any status yet report as pending, which keeps them out
// of the success counts without treating them as failures.
func (c *Client) latestDeploymentStatus(ctx context.Context, owner, name string, id int64) string {
	statuses, _, err := c.gh.Repositories.ListDeploymentStatuses(ctx, owner, name, id, &github.ListOptions{PerPage: 1})
	if err != nil {
		contract.LogWarn(fmt.Sprintf("deployment status for %s/%s deployment %d", owner, name, id), err)
		return schema.StatusPending
	}
	if len(statuses) == 0 {
		return schema.StatusPending
	}
	return statuses[0].GetState()
}

// fetchWorkflowRuns lists workflow runs created inside the window. The runs
// endpoint has no creation filter, so the window is applied client-side with
// the same newest-first early stop as the other fetchers.
func (c *Client) fetchWorkflowRuns(ctx context.Context, repository, owner, name string, since, until time.Time) ([]schema.WorkflowRun, error) {
	var out []schema.WorkflowRun
	opts := &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		runs, resp, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch workflow runs: %w", err)
		}

		done := false
		for _, run := range runs.WorkflowRuns {
			createdAt := run.GetCreatedAt().Time
			if createdAt.After(until) {
				continue
			}
			if createdAt.Before(since) {
				done = true
				break
			}
			out = append(out, schema.WorkflowRun{
				ID:         run.GetID(),
				Name:       run.GetName(),
				Status:     run.GetStatus(),
				Conclusion: run.GetConclusion(),
				CreatedAt:  createdAt,
				UpdatedAt:  run.GetUpdatedAt().Time,
				Repository: repository,
			})
		}

		if done || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// fetchIssues lists issues created inside the window. The issues endpoint
// also returns pull requests, which are dropped here.
func (c *Client) fetchIssues(ctx context.Context, repository, owner, name string, since, until time.Time) ([]schema.Issue, error) {
	var out []schema.Issue
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       since,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}

	for {
		issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issues: %w", err)
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			createdAt := issue.GetCreatedAt()
			if createdAt.Before(since) || createdAt.After(until) {
				continue
			}
			out = append(out, convertIssue(issue, repository))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

func convertIssue(issue *github.Issue, repository string) schema.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return schema.Issue{
		ID:         issue.GetID(),
		Number:     issue.GetNumber(),
		Title:      issue.GetTitle(),
		State:      issue.GetState(),
		CreatedAt:  issue.GetCreatedAt(),
		ClosedAt:   issue.ClosedAt,
		Labels:     labels,
		Repository: repository,
	}
}
