package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/gitgrant/internal/core"
)

// IssueFetcher adapts a Client to core.IssueSource.
type IssueFetcher struct {
	client Client
	logger *slog.Logger
}

// NewIssueFetcher creates a fetcher on top of the given client.
func NewIssueFetcher(client Client, logger *slog.Logger) *IssueFetcher {
	return &IssueFetcher{client: client, logger: logger}
}

var _ core.IssueSource = (*IssueFetcher)(nil)

// OpenIssues lists the open issues of a repository with their labels.
func (f *IssueFetcher) OpenIssues(ctx context.Context, owner, repo string) ([]core.IssueDetails, error) {
	issues, err := f.client.ListOpenIssues(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	out := make([]core.IssueDetails, 0, len(issues))
	for _, issue := range issues {
		out = append(out, toIssueDetails(issue))
	}
	f.logger.Debug("fetched open issues", "owner", owner, "repo", repo, "count", len(out))
	return out, nil
}

// IssueDetails fetches the issue, its labels and all of its comments.
func (f *IssueFetcher) IssueDetails(ctx context.Context, ref core.IssueRef) (*core.IssueDetails, error) {
	issue, err := f.client.GetIssue(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, err
	}
	details := toIssueDetails(issue)

	labels, err := f.client.ListIssueLabels(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, err
	}
	details.Labels = labelNames(labels)

	comments, err := f.client.ListIssueComments(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		details.Comments = append(details.Comments, core.IssueComment{
			Author: c.GetUser().GetLogin(),
			Body:   c.GetBody(),
		})
	}

	return &details, nil
}

// RepoConfig loads the repository's .gitgrant.yml.
func (f *IssueFetcher) RepoConfig(ctx context.Context, owner, repo string) (*core.RepoConfig, error) {
	cfg, err := f.client.GetRepoConfig(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to load repository config: %w", err)
	}
	return cfg, nil
}

func toIssueDetails(issue *github.Issue) core.IssueDetails {
	return core.IssueDetails{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  issue.GetState(),
		Labels: labelNames(issue.Labels),
	}
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}
