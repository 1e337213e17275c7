package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sevigo/gitgrant/internal/app"
	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/wire"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgWhite)
	dimColor     = color.New(color.FgHiBlack)
	boldColor    = color.New(color.Bold)
)

func initApp(ctx context.Context) (*app.App, func(), error) {
	a, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app: %w\n\nTip: Check your .env file and GITHUB_TOKEN", err)
	}
	return a, cleanup, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printState(state *core.State) error {
	if outputJSON {
		return printJSON(state)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println()
	titleColor.Println(separator)
	titleColor.Printf("WORKFLOW RESULT %s\n", state.RepoID())
	titleColor.Println(separator)

	if state.Message != "" {
		successColor.Println(state.Message)
	}
	if state.RemainingBudget != nil {
		infoColor.Printf("Remaining budget: %s wei\n", state.RemainingBudget)
	}
	if len(state.Issues) == 0 {
		return nil
	}

	fmt.Println()
	boldColor.Printf("%-10s %s\n", "ISSUE", "RATING")
	for _, r := range state.Issues.Sorted() {
		if r.Rating == 0 {
			warnColor.Printf("#%-9d %s\n", r.Number, "unrated")
			continue
		}
		infoColor.Printf("#%-9d %d\n", r.Number, r.Rating)
	}
	dimColor.Printf("\nRating sum: %d\n", state.RatingSum)
	return nil
}
