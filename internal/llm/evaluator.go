package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sevigo/gitgrant/internal/core"
)

type evaluationData struct {
	Repository   string
	Issue        *core.IssueDetails
	Instructions []string
}

// IssueEvaluator summarizes the steps needed to resolve an issue.
type IssueEvaluator struct {
	issues    core.IssueSource
	generator Generator
	prompts   *PromptManager
	provider  ModelProvider
	logger    *slog.Logger
}

var _ core.Evaluator = (*IssueEvaluator)(nil)

func NewIssueEvaluator(issues core.IssueSource, generator Generator, prompts *PromptManager, provider ModelProvider, logger *slog.Logger) *IssueEvaluator {
	return &IssueEvaluator{
		issues:    issues,
		generator: generator,
		prompts:   prompts,
		provider:  provider,
		logger:    logger,
	}
}

// Evaluate fetches the issue with its labels and comments and asks the model
// for a list of action items.
func (e *IssueEvaluator) Evaluate(ctx context.Context, ref core.IssueRef, instructions []string) (string, error) {
	details, err := e.issues.IssueDetails(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("failed to fetch issue %s: %w", ref, err)
	}

	prompt, err := e.prompts.Render(EvaluateIssuePrompt, e.provider, evaluationData{
		Repository:   core.RepoID(ref.Owner, ref.Repo),
		Issue:        details,
		Instructions: instructions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render evaluation prompt: %w", err)
	}

	start := time.Now()
	summary, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate issue %s: %w", ref, err)
	}
	e.logger.Info("issue evaluated", "issue", ref.String(), "duration", time.Since(start), "summary_len", len(summary))

	return summary, nil
}
