package github

import (
	"testing"
	"time"

	"github.com/google/go-github/v39/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorascope/dorascope/internal/contract"
)

var prCreated = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

// samplePullRequest builds a REST API pull request with the fields the
// converter reads.
func samplePullRequest() *github.PullRequest {
	merged := prCreated.Add(4 * time.Hour)
	return &github.PullRequest{
		ID:           github.Int64(9001),
		Number:       github.Int(42),
		Title:        github.String("Speed up checkout"),
		State:        github.String("closed"),
		CreatedAt:    &prCreated,
		MergedAt:     &merged,
		User:         &github.User{Login: github.String("sam")},
		Base:         &github.PullRequestBranch{Ref: github.String("main")},
		Head:         &github.PullRequestBranch{Ref: github.String("feature/speedup")},
		Additions:    github.Int(120),
		Deletions:    github.Int(30),
		ChangedFiles: github.Int(6),
	}
}

func TestConvertPullRequest(t *testing.T) {
	pr := convertPullRequest(samplePullRequest(), "acme/checkout")

	assert.Equal(t, int64(9001), pr.ID)
	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "Speed up checkout", pr.Title)
	assert.Equal(t, "closed", pr.State)
	assert.Equal(t, "acme/checkout", pr.Repository)
	assert.Equal(t, "sam", pr.Author)
	assert.Equal(t, "main", pr.BaseRefName)
	assert.Equal(t, "feature/speedup", pr.HeadRefName)
	assert.Equal(t, 120, pr.Additions)
	assert.Equal(t, 6, pr.ChangedFiles)
	require.NotNil(t, pr.MergedAt)
	assert.True(t, pr.Merged())
	assert.Nil(t, pr.ClosedAt)
}

func TestSkipPullRequest(t *testing.T) {
	t.Run("excluded label matches case-insensitively", func(t *testing.T) {
		client := &Client{excludeLabels: []string{"dependencies"}}
		pr := samplePullRequest()
		pr.Labels = []*github.Label{{Name: github.String("Dependencies")}}

		assert.True(t, client.skipPullRequest(pr))
	})

	t.Run("unlisted label passes", func(t *testing.T) {
		client := &Client{excludeLabels: []string{"dependencies"}}
		pr := samplePullRequest()
		pr.Labels = []*github.Label{{Name: github.String("bugfix")}}

		assert.False(t, client.skipPullRequest(pr))
	})

	t.Run("base branch allowlist", func(t *testing.T) {
		client := &Client{baseBranches: []string{"main", "master"}}

		assert.False(t, client.skipPullRequest(samplePullRequest()))

		pr := samplePullRequest()
		pr.Base.Ref = github.String("release/v2")
		assert.True(t, client.skipPullRequest(pr))
	})

	t.Run("no filters keeps everything", func(t *testing.T) {
		client := &Client{}
		assert.False(t, client.skipPullRequest(samplePullRequest()))
	})
}

func TestApplyReviews(t *testing.T) {
	firstAt := prCreated.Add(1 * time.Hour)
	laterAt := prCreated.Add(3 * time.Hour)

	pr := convertPullRequest(samplePullRequest(), "acme/checkout")
	reviews := []*github.PullRequestReview{
		{
			State:       github.String("CHANGES_REQUESTED"),
			SubmittedAt: &laterAt,
			User:        &github.User{Login: github.String("riley")},
		},
		{
			State:       github.String("APPROVED"),
			SubmittedAt: &firstAt,
			User:        &github.User{Login: github.String("alex")},
		},
		{
			// Pending reviews have no submitted time and carry no signal
			State: github.String("PENDING"),
			User:  &github.User{Login: github.String("riley")},
		},
		{
			// Self-reviews are skipped
			State:       github.String("COMMENTED"),
			SubmittedAt: &laterAt,
			User:        &github.User{Login: github.String("sam")},
		},
	}

	applyReviews(&pr, reviews)

	assert.Equal(t, 2, pr.ReviewCount)
	assert.Equal(t, 1, pr.ChangesRequested)
	require.NotNil(t, pr.FirstReviewAt)
	assert.Equal(t, firstAt, *pr.FirstReviewAt)
}

func TestNewClient(t *testing.T) {
	t.Run("default API", func(t *testing.T) {
		client, err := NewClient(&contract.Config{Token: "ghp_dummy"})
		require.NoError(t, err)
		assert.Contains(t, client.gh.BaseURL.String(), "api.github.com")
	})

	t.Run("anonymous access", func(t *testing.T) {
		client, err := NewClient(&contract.Config{})
		require.NoError(t, err)
		assert.NotNil(t, client.gh)
	})

	t.Run("enterprise base URL", func(t *testing.T) {
		client, err := NewClient(&contract.Config{APIBaseURL: "https://ghe.example.com/"})
		require.NoError(t, err)
		assert.Contains(t, client.gh.BaseURL.String(), "ghe.example.com")
	})

	t.Run("carries filters from config", func(t *testing.T) {
		cfg := &contract.Config{
			Environment:   "production",
			ExcludeLabels: []string{"bot"},
			BaseBranches:  []string{"main"},
			Detail:        true,
		}
		client, err := NewClient(cfg)
		require.NoError(t, err)
		assert.Equal(t, "production", client.environment)
		assert.True(t, client.detail)
	})
}

func TestConvertIssue(t *testing.T) {
	closed := prCreated.Add(30 * time.Hour)
	issue := &github.Issue{
		ID:        github.Int64(7),
		Number:    github.Int(12),
		Title:     github.String("Checkout 500s under load"),
		State:     github.String("closed"),
		ClosedAt:  &closed,
		Labels:    []*github.Label{{Name: github.String("incident")}, {Name: github.String("p1")}},
		CreatedAt: &prCreated,
	}

	converted := convertIssue(issue, "acme/checkout")

	assert.Equal(t, int64(7), converted.ID)
	assert.Equal(t, "acme/checkout", converted.Repository)
	assert.Equal(t, []string{"incident", "p1"}, converted.Labels)
	assert.True(t, converted.Closed())
}
