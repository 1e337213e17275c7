package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/github"
)

const issueStateNA = "N/A"

// ContributionAgent resolves a pull request to its author and the issue it
// closes.
type ContributionAgent struct {
	client    github.Client
	generator Generator
	prompts   *PromptManager
	provider  ModelProvider
	logger    *slog.Logger
}

func NewContributionAgent(client github.Client, generator Generator, prompts *PromptManager, provider ModelProvider, logger *slog.Logger) *ContributionAgent {
	return &ContributionAgent{
		client:    client,
		generator: generator,
		prompts:   prompts,
		provider:  provider,
		logger:    logger,
	}
}

// Contribution looks up the pull request. Closing keywords in the body are
// tried first; the model is only asked when none match.
func (a *ContributionAgent) Contribution(ctx context.Context, pr core.IssueRef) (*core.Contribution, error) {
	pull, err := a.client.GetPullRequest(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return nil, err
	}

	out := &core.Contribution{
		Author:     pull.GetUser().GetLogin(),
		PRState:    pull.GetState(),
		Merged:     pull.GetMerged(),
		IssueState: issueStateNA,
	}

	linked, ok := linkedIssueFromBody(pull.GetBody(), pr.Owner, pr.Repo)
	if !ok && pull.GetBody() != "" {
		linked, err = a.askLinkedIssue(ctx, pull.GetBody())
		if err != nil {
			return nil, err
		}
	}
	out.LinkedIssue = linked
	if linked == 0 {
		return out, nil
	}

	issue, err := a.client.GetIssue(ctx, pr.Owner, pr.Repo, linked)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linked issue: %w", err)
	}
	out.IssueState = issue.GetState()

	a.logger.Info("contribution resolved", "pr", pr.String(), "author", out.Author, "issue", linked)
	return out, nil
}

func (a *ContributionAgent) askLinkedIssue(ctx context.Context, body string) (int, error) {
	prompt, err := a.prompts.Render(LinkedIssuePrompt, a.provider, struct{ Body string }{body})
	if err != nil {
		return 0, fmt.Errorf("failed to render linked issue prompt: %w", err)
	}
	reply, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to find linked issue: %w", err)
	}
	return parseIssueNumber(reply)
}
