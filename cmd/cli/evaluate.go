package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitgrant/internal/gitutil"
)

var skipRating bool

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [issue-url]",
	Short: "Evaluate a single issue and rate its difficulty",
	Long: `Evaluate a single GitHub issue without touching the ledger.

The evaluator turns the issue into action items, then the rater scores them
from 1 to 100.

Examples:
  gitgrant-cli evaluate https://github.com/acme/widgets/issues/12
  gitgrant-cli evaluate --no-rating https://github.com/acme/widgets/issues/12`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	evaluateCmd.Flags().BoolVar(&skipRating, "no-rating", false, "Only print the action items")
	rootCmd.AddCommand(evaluateCmd)
}

type evaluation struct {
	Issue       string `json:"issue"`
	ActionItems string `json:"action_items"`
	Rating      int    `json:"rating,omitempty"`
}

func runEvaluate(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	ref, err := gitutil.ParseIssueURL(args[0])
	if err != nil {
		return fmt.Errorf("invalid issue URL: %w\n\nExpected format: https://github.com/owner/repo/issues/123", err)
	}

	a, cleanup, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := a.Issues.RepoConfig(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return fmt.Errorf("failed to load repository config: %w", err)
	}

	start := time.Now()
	items, err := a.Evaluator.Evaluate(ctx, ref, cfg.CustomInstructions)
	if err != nil {
		return fmt.Errorf("failed to evaluate %s: %w\n\nTip: Check that the LLM service is running", ref, err)
	}
	result := evaluation{Issue: ref.String(), ActionItems: items}

	if !skipRating {
		if result.Rating, err = a.Rater.Rate(ctx, items); err != nil {
			return fmt.Errorf("failed to rate %s: %w", ref, err)
		}
	}

	if outputJSON {
		return printJSON(result)
	}

	titleColor.Printf("Action items for %s\n\n", ref)
	infoColor.Println(items)
	if !skipRating {
		fmt.Println()
		successColor.Printf("Difficulty rating: %d\n", result.Rating)
	}
	dimColor.Printf("\nTotal time: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
