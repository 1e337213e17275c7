// Package workflow runs the bounty workflow: a small state machine that
// routes between fetching issues, evaluating and rating them, and the ledger
// operations.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/gitgrant/internal/core"
)

// DefaultStepLimit bounds node executions per run.
const DefaultStepLimit = 100

type node string

const (
	nodeRoute      node = "route"
	nodeEvaluate   node = "evaluate"
	nodeRate       node = "rate"
	nodeTerminated node = "terminated"
)

// Orchestrator executes workflow runs. It holds no per-run state and may be
// shared.
type Orchestrator struct {
	issues    core.IssueSource
	evaluator core.Evaluator
	rater     core.Rater
	ledger    core.Ledger
	metrics   *Metrics
	stepLimit int
	logger    *slog.Logger
}

var _ core.WorkflowRunner = (*Orchestrator)(nil)

func NewOrchestrator(
	issues core.IssueSource,
	evaluator core.Evaluator,
	rater core.Rater,
	ledger core.Ledger,
	metrics *Metrics,
	stepLimit int,
	logger *slog.Logger,
) *Orchestrator {
	if stepLimit <= 0 {
		stepLimit = DefaultStepLimit
	}
	return &Orchestrator{
		issues:    issues,
		evaluator: evaluator,
		rater:     rater,
		ledger:    ledger,
		metrics:   metrics,
		stepLimit: stepLimit,
		logger:    logger,
	}
}

// transition maps the state's action to the node that handles it.
func transition(action core.Action) (node, error) {
	switch action {
	case core.ActionFetch, core.ActionRegisterUser, core.ActionRegisterRepo, core.ActionResolve:
		return nodeRoute, nil
	case core.ActionEvaluate:
		return nodeEvaluate, nil
	case core.ActionNone:
		return nodeTerminated, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnknownAction, action)
	}
}

// Run executes the workflow on a copy of state until it terminates.
func (o *Orchestrator) Run(ctx context.Context, state *core.State) (*core.State, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: state", ErrMissingField)
	}

	r := &run{
		Orchestrator: o,
		state:        state.Clone(),
	}
	if err := validateIssues(state.Issues); err != nil {
		return nil, err
	}
	// A terminating run returns the state untouched, nil issues included.
	if r.state.Issues == nil && r.state.Action != core.ActionNone {
		r.state.Issues = core.IssueRatings{}
	}
	r.logger = o.logger.With("run_id", uuid.NewString(), "repo", r.state.RepoID())

	startAction := string(state.Action)
	if startAction == "" {
		startAction = "none"
	}
	r.logger.Info("workflow run started", "action", startAction, "issues", len(r.state.Issues))

	final, err := r.loop(ctx)
	if err != nil {
		o.metrics.observeRun(startAction, "error")
		r.logger.Error("workflow run failed", "steps", r.steps, "error", err)
		return nil, err
	}

	o.metrics.observeRun(startAction, "ok")
	r.logger.Info("workflow run finished", "steps", r.steps, "message", final.Message)
	return final, nil
}

// validateIssues guards states built in code; decoded states are already
// checked by IssueRatings.UnmarshalJSON.
func validateIssues(issues core.IssueRatings) error {
	for number, rating := range issues {
		if number < 1 || rating < 0 {
			return fmt.Errorf("%w: issue %d rated %d", core.ErrInvalidIssueRating, number, rating)
		}
	}
	return nil
}

// run carries the state of a single workflow execution.
type run struct {
	*Orchestrator
	state      *core.State
	steps      int
	repoConfig *core.RepoConfig
	logger     *slog.Logger
}

func (r *run) loop(ctx context.Context) (*core.State, error) {
	current := nodeRoute
	for current != nodeTerminated {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("workflow cancelled: %w", err)
		}
		if r.steps >= r.stepLimit {
			return nil, fmt.Errorf("%w: %d steps without reaching a terminal state", ErrStepLimitExceeded, r.stepLimit)
		}
		r.steps++

		start := time.Now()
		next, err := r.exec(ctx, current)
		r.metrics.observeNode(string(current), err, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("%s node: %w", current, err)
		}
		r.logger.Debug("node executed", "node", current, "next", next, "step", r.steps)
		current = next
	}
	return r.state, nil
}

func (r *run) exec(ctx context.Context, n node) (node, error) {
	switch n {
	case nodeRoute:
		if err := r.route(ctx); err != nil {
			return "", err
		}
		return transition(r.state.Action)
	case nodeEvaluate:
		if err := r.evaluate(ctx); err != nil {
			return "", err
		}
		return nodeRate, nil
	case nodeRate:
		if err := r.rate(ctx); err != nil {
			return "", err
		}
		return nodeRoute, nil
	case nodeTerminated:
		return nodeTerminated, nil
	default:
		return "", fmt.Errorf("unknown node %q", n)
	}
}
