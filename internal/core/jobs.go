package core

import (
	"context"
)

// WorkflowRunner drives a workflow state to completion. The HTTP endpoint,
// the CLI and the terminal all run workflows through this interface.
type WorkflowRunner interface {
	// Run executes the workflow starting from the given state and returns the
	// final state. The input state is not modified.
	Run(ctx context.Context, state *State) (*State, error)
}

// Evaluator turns an issue into a prose list of action items.
//
//go:generate mockgen -destination=../../mocks/mock_agents.go -package=mocks . Evaluator,Rater
type Evaluator interface {
	Evaluate(ctx context.Context, ref IssueRef, instructions []string) (string, error)
}

// Rater assigns a difficulty rating to an action-item summary.
type Rater interface {
	Rate(ctx context.Context, actionItems string) (int, error)
}

// IssueSource supplies the issue data the workflow and the agents work on.
//
//go:generate mockgen -destination=../../mocks/mock_issue_source.go -package=mocks . IssueSource
type IssueSource interface {
	// OpenIssues lists open issues without comments.
	OpenIssues(ctx context.Context, owner, repo string) ([]IssueDetails, error)
	// IssueDetails returns a single issue with its labels and comments.
	IssueDetails(ctx context.Context, ref IssueRef) (*IssueDetails, error)
	RepoConfig(ctx context.Context, owner, repo string) (*RepoConfig, error)
}
