package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitgrant/internal/gitutil"
)

var contributionCmd = &cobra.Command{
	Use:   "contribution [pr-url]",
	Short: "Show the author, state and linked issue of a pull request",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		ref, err := gitutil.ParsePullRequestURL(args[0])
		if err != nil {
			return fmt.Errorf("invalid PR URL: %w\n\nExpected format: https://github.com/owner/repo/pull/123", err)
		}

		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		c, err := a.Contributions.Contribution(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", ref, err)
		}
		if outputJSON {
			return printJSON(c)
		}

		titleColor.Printf("Pull request %s\n", ref)
		infoColor.Printf("Author:       %s\n", c.Author)
		infoColor.Printf("State:        %s (merged: %t)\n", c.PRState, c.Merged)
		if c.LinkedIssue == 0 {
			warnColor.Println("Linked issue: none")
			return nil
		}
		infoColor.Printf("Linked issue: #%d (%s)\n", c.LinkedIssue, c.IssueState)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(contributionCmd)
}
