package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/gitgrant/internal/core"
)

// IssueRater scores action items with a single LLM call.
type IssueRater struct {
	generator Generator
	prompts   *PromptManager
	provider  ModelProvider
	logger    *slog.Logger
}

var _ core.Rater = (*IssueRater)(nil)

func NewIssueRater(generator Generator, prompts *PromptManager, provider ModelProvider, logger *slog.Logger) *IssueRater {
	return &IssueRater{
		generator: generator,
		prompts:   prompts,
		provider:  provider,
		logger:    logger,
	}
}

// Rate returns the difficulty rating the model assigns to the action items.
func (r *IssueRater) Rate(ctx context.Context, actionItems string) (int, error) {
	if strings.TrimSpace(actionItems) == "" {
		return 0, errors.New("nothing to rate: action items are empty")
	}

	prompt, err := r.prompts.Render(RateIssuePrompt, r.provider, struct{ ActionItems string }{actionItems})
	if err != nil {
		return 0, fmt.Errorf("failed to render rating prompt: %w", err)
	}

	reply, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to rate issue: %w", err)
	}

	rating, err := ParseRating(reply)
	if err != nil {
		r.logger.Warn("unusable rating reply", "reply", truncate(reply, 200), "error", err)
		return 0, err
	}
	r.logger.Debug("issue rated", "rating", rating)
	return rating, nil
}
