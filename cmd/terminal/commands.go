package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/gitgrant/internal/app"
	"github.com/sevigo/gitgrant/internal/core"
	"github.com/sevigo/gitgrant/internal/wire"
)

func initializeAppCmd() tea.Cmd {
	return func() tea.Msg {
		a, cleanup, err := wire.InitializeApp(context.Background())
		if err != nil {
			return appInitializedMsg{err: err}
		}
		return appInitializedMsg{app: a, cleanup: cleanup}
	}
}

func loadRepoCmd(a *app.App, owner, repo string) tea.Cmd {
	return func() tea.Msg {
		state, err := a.Ledger.GetRepoState(context.Background(), core.RepoID(owner, repo))
		return repoLoadedMsg{owner: owner, repo: repo, state: state, err: err}
	}
}

// runWorkflowCmd runs the workflow on a copy of the session state. The
// session only adopts the result when the run succeeds.
func runWorkflowCmd(a *app.App, state *core.State) tea.Cmd {
	return func() tea.Msg {
		final, err := a.Workflow.Run(context.Background(), state)
		if err != nil {
			return workflowDoneMsg{err: fmt.Errorf("error while invoking workflow: %w", err)}
		}
		return workflowDoneMsg{state: final}
	}
}

func evaluateIssueCmd(a *app.App, ref core.IssueRef) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cfg, err := a.Issues.RepoConfig(ctx, ref.Owner, ref.Repo)
		if err != nil {
			return evaluationMsg{ref: ref, err: err}
		}
		items, err := a.Evaluator.Evaluate(ctx, ref, cfg.CustomInstructions)
		if err != nil {
			return evaluationMsg{ref: ref, err: err}
		}
		rating, err := a.Rater.Rate(ctx, items)
		return evaluationMsg{ref: ref, items: items, rating: rating, err: err}
	}
}

func rateCmd(a *app.App, text string) tea.Cmd {
	return func() tea.Msg {
		rating, err := a.Rater.Rate(context.Background(), text)
		return ratingMsg{rating: rating, err: err}
	}
}

func contributionCmd(a *app.App, ref core.IssueRef) tea.Cmd {
	return func() tea.Msg {
		c, err := a.Contributions.Contribution(context.Background(), ref)
		return contributionMsg{ref: ref, contribution: c, err: err}
	}
}
