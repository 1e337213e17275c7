package workflow

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/sevigo/gitgrant/internal/core"
)

// route performs the ledger and fetch actions. Evaluate and terminate need no
// work here; the transition function dispatches them.
func (r *run) route(ctx context.Context) error {
	switch r.state.Action {
	case core.ActionFetch:
		return r.fetch(ctx)
	case core.ActionRegisterUser:
		return r.registerUser(ctx)
	case core.ActionRegisterRepo:
		return r.registerRepo(ctx)
	case core.ActionResolve:
		return r.resolve(ctx)
	case core.ActionEvaluate, core.ActionNone:
		return nil
	default:
		return fmt.Errorf("%w: %q", core.ErrUnknownAction, r.state.Action)
	}
}

func (r *run) requireRepo() error {
	if r.state.Owner == "" {
		return fmt.Errorf("%w: owner", ErrMissingField)
	}
	if r.state.Repo == "" {
		return fmt.Errorf("%w: repo", ErrMissingField)
	}
	return nil
}

func (r *run) fetch(ctx context.Context) error {
	if err := r.requireRepo(); err != nil {
		return err
	}
	repoID := r.state.RepoID()

	repoState, err := r.ledger.GetRepoState(ctx, repoID)
	if err != nil {
		return err
	}
	if !repoState.Registered() {
		return fmt.Errorf("%w: %s", ErrRepoNotRegistered, repoID)
	}
	r.state.RemainingBudget = copyBig(repoState.RemainingBudget)

	cfg, err := r.config(ctx)
	if err != nil {
		return err
	}
	open, err := r.issues.OpenIssues(ctx, r.state.Owner, r.state.Repo)
	if err != nil {
		return err
	}

	added, excluded := 0, 0
	for _, issue := range open {
		if cfg.Excludes(issue.Labels) {
			excluded++
			continue
		}
		if _, ok := r.state.Issues[issue.Number]; !ok {
			r.state.Issues[issue.Number] = 0
			added++
		}
	}
	r.logger.Info("issues fetched", "open", len(open), "added", added, "excluded", excluded, "unrated", len(r.state.Issues.Unrated()))

	return r.advance(ctx)
}

func (r *run) registerUser(ctx context.Context) error {
	if r.state.Username == "" {
		return fmt.Errorf("%w: username", ErrMissingField)
	}
	if r.state.Address == "" {
		return fmt.Errorf("%w: address", ErrMissingField)
	}

	if err := r.ledger.RegisterUser(ctx, r.state.Username, r.state.Address); err != nil {
		return err
	}
	r.state.Message = fmt.Sprintf("registered user %s with wallet %s", r.state.Username, r.state.Address)
	r.state.Action = core.ActionNone
	return nil
}

func (r *run) registerRepo(ctx context.Context) error {
	if err := r.requireRepo(); err != nil {
		return err
	}
	repoID := r.state.RepoID()

	registered, err := r.ledger.CheckRepoRegistration(ctx, repoID)
	if err != nil {
		return err
	}
	if registered {
		r.state.Message = fmt.Sprintf("repository %s is already registered", repoID)
	} else {
		if err := r.ledger.RegisterRepo(ctx, r.state.Owner, r.state.Repo); err != nil {
			return err
		}
		r.state.Message = fmt.Sprintf("registered repository %s", repoID)
	}

	repoState, err := r.ledger.GetRepoState(ctx, repoID)
	if err != nil {
		return err
	}
	r.state.RemainingBudget = copyBig(repoState.RemainingBudget)
	r.state.Action = core.ActionNone
	return nil
}

func (r *run) resolve(ctx context.Context) error {
	if err := r.requireRepo(); err != nil {
		return err
	}
	if r.state.CurrentIssue == nil {
		return fmt.Errorf("%w: current_issue", ErrMissingField)
	}
	if r.state.Username == "" {
		return fmt.Errorf("%w: username", ErrMissingField)
	}
	issue := *r.state.CurrentIssue
	repoID := r.state.RepoID()

	rating := r.state.Issues[issue]
	if rating <= 0 {
		return fmt.Errorf("%w: #%d", ErrIssueNotRated, issue)
	}

	wallet, err := r.ledger.GetContributorAddress(ctx, r.state.Username)
	if err != nil {
		return err
	}
	if wallet == "" {
		return fmt.Errorf("%w: %s", ErrUserNotRegistered, r.state.Username)
	}

	repoState, err := r.ledger.GetRepoState(ctx, repoID)
	if err != nil {
		return err
	}
	if !repoState.Registered() {
		return fmt.Errorf("%w: %s", ErrRepoNotRegistered, repoID)
	}

	payout, err := core.Payout(repoState.RemainingBudget, repoState.RatingSum, rating)
	if err != nil {
		return fmt.Errorf("cannot compute payout for %s#%d: %w", repoID, issue, err)
	}
	if err := r.ledger.ResolveIssue(ctx, repoID, issue, r.state.Username, payout); err != nil {
		return err
	}

	delete(r.state.Issues, issue)
	remaining := copyBig(repoState.RemainingBudget)
	if remaining == nil {
		remaining = new(big.Int)
	}
	r.state.RemainingBudget = remaining.Sub(remaining, payout)
	r.state.RatingSum = r.state.Issues.Sum()
	r.state.CurrentIssue = nil
	r.state.Message = fmt.Sprintf("resolved issue #%d for %s, paid %s wei to %s", issue, repoID, payout, r.state.Username)
	r.state.Action = core.ActionNone

	r.logger.Info("issue resolved", "issue", issue, "username", r.state.Username, "wallet", wallet, "payout", payout.String())
	return nil
}

// evaluate selects the lowest unrated issue when none is current and asks
// the evaluator for its action items.
func (r *run) evaluate(ctx context.Context) error {
	if r.state.CurrentIssue == nil {
		next, ok := r.state.Issues.NextUnrated()
		if !ok {
			return nil
		}
		r.state.SelectIssue(next)
	}
	if err := r.requireRepo(); err != nil {
		return err
	}

	cfg, err := r.config(ctx)
	if err != nil {
		return err
	}
	ref := core.IssueRef{Owner: r.state.Owner, Repo: r.state.Repo, Number: *r.state.CurrentIssue}
	items, err := r.evaluator.Evaluate(ctx, ref, cfg.CustomInstructions)
	if err != nil {
		return err
	}
	if strings.TrimSpace(items) == "" {
		return fmt.Errorf("evaluation of %s returned no action items", ref)
	}
	r.state.ActionItems = items
	return nil
}

func (r *run) rate(ctx context.Context) error {
	if r.state.CurrentIssue != nil && strings.TrimSpace(r.state.ActionItems) != "" {
		rating, err := r.rater.Rate(ctx, r.state.ActionItems)
		if err != nil {
			return err
		}
		issue := *r.state.CurrentIssue
		r.state.Issues[issue] = rating
		r.state.ActionItems = ""
		r.metrics.observeRating(rating)
		r.logger.Info("issue rated", "issue", issue, "rating", rating)
	}
	return r.advance(ctx)
}

// advance moves to the lowest unrated issue, or finalizes when every issue
// has a rating.
func (r *run) advance(ctx context.Context) error {
	if next, ok := r.state.Issues.NextUnrated(); ok {
		r.state.SelectIssue(next)
		r.state.Action = core.ActionEvaluate
		return nil
	}
	return r.finalize(ctx)
}

func (r *run) finalize(ctx context.Context) error {
	repoID := r.state.RepoID()
	r.state.RatingSum = r.state.Issues.Sum()

	if len(r.state.Issues) > 0 {
		if err := r.ledger.UpdateIssues(ctx, repoID, r.state.Issues.Sorted(), r.state.RatingSum); err != nil {
			return err
		}
	}

	r.state.CurrentIssue = nil
	r.state.ActionItems = ""
	r.state.Message = fmt.Sprintf("rated %d issues for %s, rating sum %d", len(r.state.Issues), repoID, r.state.RatingSum)
	r.state.Action = core.ActionNone
	return nil
}

func (r *run) config(ctx context.Context) (*core.RepoConfig, error) {
	if r.repoConfig != nil {
		return r.repoConfig, nil
	}
	cfg, err := r.issues.RepoConfig(ctx, r.state.Owner, r.state.Repo)
	if err != nil {
		return nil, err
	}
	r.repoConfig = cfg
	return cfg, nil
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
