package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/gitgrant/internal/gitutil"
)

var issuesCmd = &cobra.Command{
	Use:   "issues [owner/repo]",
	Short: "List the open issues the workflow would rate",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		owner, repo, err := gitutil.ParseRepository(args[0])
		if err != nil {
			return err
		}

		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		cfg, err := a.Issues.RepoConfig(ctx, owner, repo)
		if err != nil {
			return fmt.Errorf("failed to load repository config: %w", err)
		}
		issues, err := a.Issues.OpenIssues(ctx, owner, repo)
		if err != nil {
			return fmt.Errorf("failed to list issues: %w", err)
		}

		if outputJSON {
			return printJSON(issues)
		}
		if len(issues) == 0 {
			warnColor.Printf("No open issues in %s/%s.\n", owner, repo)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ISSUE\tTITLE\tLABELS\tRATED")
		for _, issue := range issues {
			rated := "yes"
			if cfg.Excludes(issue.Labels) {
				rated = "excluded"
			}
			fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", issue.Number, issue.Title, strings.Join(issue.Labels, ","), rated)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(issuesCmd)
}
