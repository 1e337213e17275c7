package main

import (
	"github.com/sevigo/gitgrant/internal/app"
	"github.com/sevigo/gitgrant/internal/core"
)

// Indicates that the core application services have been initialized.
type appInitializedMsg struct {
	app     *app.App
	cleanup func()
	err     error
}

// The on-chain record of the selected repository was read.
type repoLoadedMsg struct {
	owner string
	repo  string
	state *core.RepoState
	err   error
}

// A workflow run finished and produced a new session state.
type workflowDoneMsg struct {
	state *core.State
	err   error
}

// A single issue was evaluated outside the workflow.
type evaluationMsg struct {
	ref    core.IssueRef
	items  string
	rating int
	err    error
}

type ratingMsg struct {
	rating int
	err    error
}

type contributionMsg struct {
	ref          core.IssueRef
	contribution *core.Contribution
	err          error
}
