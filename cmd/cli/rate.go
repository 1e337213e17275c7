package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rateFile string

var rateCmd = &cobra.Command{
	Use:   "rate [text]",
	Short: "Rate the difficulty of free-form action items",
	Long: `Rate the difficulty of free-form action items from 1 to 100.

The text is taken from the arguments, from --file, or from stdin.

Examples:
  gitgrant-cli rate "Add a retry to the webhook sender and cover it with tests"
  gitgrant-cli evaluate --no-rating --json URL | jq -r .action_items | gitgrant-cli rate`,
	RunE: func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		text, err := rateInput(args)
		if err != nil {
			return err
		}

		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		rating, err := a.Rater.Rate(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to rate: %w", err)
		}
		if outputJSON {
			return printJSON(map[string]int{"rating": rating})
		}
		successColor.Printf("Difficulty rating: %d\n", rating)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rateCmd.Flags().StringVarP(&rateFile, "file", "f", "", "Read the text from a file")
	rootCmd.AddCommand(rateCmd)
}

func rateInput(args []string) (string, error) {
	var text string
	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case rateFile != "":
		data, err := os.ReadFile(rateFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", rateFile, err)
		}
		text = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to rate")
	}
	return text, nil
}
