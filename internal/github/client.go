// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/gitgrant/internal/core"
)

// RepoConfigFile is read from the default branch of every participating repository.
const RepoConfigFile = ".gitgrant.yml"

const perPage = 100

// Client defines the read-only operations gitgrant performs against the
// GitHub API: issues, their comments and labels, pull requests and the
// repository config file.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	ListOpenIssues(ctx context.Context, owner, repo string) ([]*github.Issue, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error)
	ListIssueLabels(ctx context.Context, owner, repo string, number int) ([]*github.Label, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	GetRepoConfig(ctx context.Context, owner, repo string) (*core.RepoConfig, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	return &gitHubClient{client: client, logger: logger}
}

// ListOpenIssues returns every open issue of the repository. Pull requests,
// which the issues endpoint also returns, are filtered out.
func (g *gitHubClient) ListOpenIssues(ctx context.Context, owner, repo string) ([]*github.Issue, error) {
	var all []*github.Issue
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for {
		issues, resp, err := g.client.Issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			g.logger.Error("failed to list issues", "owner", owner, "repo", repo, "error", err)
			return nil, fmt.Errorf("failed to list issues for %s/%s: %w", owner, repo, err)
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, issue)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// GetIssue retrieves a single issue by its number.
func (g *gitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	issue, _, err := g.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get issue", "owner", owner, "repo", repo, "issue", number, "error", err)
		return nil, fmt.Errorf("failed to get issue %s/%s#%d: %w", owner, repo, number, err)
	}
	return issue, nil
}

// ListIssueComments retrieves all comments on an issue, following pagination.
func (g *gitHubClient) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error) {
	var all []*github.IssueComment
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: perPage}}

	for {
		comments, resp, err := g.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list issue comments", "owner", owner, "repo", repo, "issue", number, "error", err)
			return nil, fmt.Errorf("failed to list comments for %s/%s#%d: %w", owner, repo, number, err)
		}
		all = append(all, comments...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListIssueLabels retrieves the labels attached to an issue.
func (g *gitHubClient) ListIssueLabels(ctx context.Context, owner, repo string, number int) ([]*github.Label, error) {
	var all []*github.Label
	opts := &github.ListOptions{PerPage: perPage}

	for {
		labels, resp, err := g.client.Issues.ListLabelsByIssue(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list issue labels", "owner", owner, "repo", repo, "issue", number, "error", err)
			return nil, fmt.Errorf("failed to list labels for %s/%s#%d: %w", owner, repo, number, err)
		}
		all = append(all, labels...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, fmt.Errorf("failed to get pull request %s/%s#%d: %w", owner, repo, number, err)
	}
	return pr, nil
}

// GetRepoConfig loads .gitgrant.yml from the default branch. A repository
// without the file gets the default config.
func (g *gitHubClient) GetRepoConfig(ctx context.Context, owner, repo string) (*core.RepoConfig, error) {
	file, _, _, err := g.client.Repositories.GetContents(ctx, owner, repo, RepoConfigFile, nil)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			g.logger.Debug("no repository config found, using defaults", "owner", owner, "repo", repo)
			return core.DefaultRepoConfig(), nil
		}
		return nil, fmt.Errorf("failed to fetch %s for %s/%s: %w", RepoConfigFile, owner, repo, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", RepoConfigFile, owner, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", RepoConfigFile, err)
	}
	return ParseRepoConfig([]byte(content))
}

// ParseRepoConfig decodes the YAML repository config on top of the defaults.
func ParseRepoConfig(data []byte) (*core.RepoConfig, error) {
	cfg := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s parsing failed: %w", RepoConfigFile, err)
	}
	return cfg, nil
}
