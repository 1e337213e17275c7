// Package llm holds the LLM-backed agents: issue evaluation, difficulty
// rating and pull request contribution lookup.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sevigo/goframe/llms"
)

// Generator produces a completion for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type modelGenerator struct {
	model llms.Model
}

// NewGenerator adapts a goframe model to Generator.
func NewGenerator(model llms.Model) Generator {
	return &modelGenerator{model: model}
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	return strings.TrimSpace(resp), nil
}
