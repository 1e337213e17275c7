// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ErrUnknownAction is returned when a workflow state names an action outside
// the supported set.
var ErrUnknownAction = errors.New("unknown action")

// Action selects what the workflow does next. The zero value terminates it.
type Action string

const (
	ActionNone         Action = ""
	ActionFetch        Action = "fetch"
	ActionRegisterUser Action = "register user"
	ActionRegisterRepo Action = "register repo"
	ActionResolve      Action = "resolve"
	ActionEvaluate     Action = "evaluate"
)

// ParseAction converts a raw action string into an Action. Matching ignores
// case and surrounding whitespace.
func ParseAction(raw string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	switch a {
	case ActionNone, ActionFetch, ActionRegisterUser, ActionRegisterRepo, ActionResolve, ActionEvaluate:
		return a, nil
	default:
		return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// UnmarshalJSON rejects actions that ParseAction does not accept.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("action must be a string: %w", err)
	}
	parsed, err := ParseAction(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// IssueRatings maps issue numbers to difficulty ratings. A rating of 0 marks
// an issue that has not been rated yet.
type IssueRatings map[int]int

// UnmarshalJSON rejects issue numbers below 1 and negative ratings. A JSON
// null leaves the map untouched.
func (r *IssueRatings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw map[int]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("issues must map issue numbers to ratings: %w", err)
	}
	for number, rating := range raw {
		if number < 1 {
			return fmt.Errorf("%w: issue number %d", ErrInvalidIssueRating, number)
		}
		if rating < 0 {
			return fmt.Errorf("%w: issue #%d rated %d", ErrInvalidIssueRating, number, rating)
		}
	}
	*r = raw
	return nil
}

// Unrated returns the numbers of all unrated issues in ascending order.
func (r IssueRatings) Unrated() []int {
	var numbers []int
	for number, rating := range r {
		if rating == 0 {
			numbers = append(numbers, number)
		}
	}
	sort.Ints(numbers)
	return numbers
}

// NextUnrated returns the lowest-numbered unrated issue.
func (r IssueRatings) NextUnrated() (int, bool) {
	unrated := r.Unrated()
	if len(unrated) == 0 {
		return 0, false
	}
	return unrated[0], true
}

// Sum adds up every rating.
func (r IssueRatings) Sum() int {
	total := 0
	for _, rating := range r {
		total += rating
	}
	return total
}

// Sorted returns the ratings ordered by issue number.
func (r IssueRatings) Sorted() []IssueRating {
	out := make([]IssueRating, 0, len(r))
	for number, rating := range r {
		out = append(out, IssueRating{Number: number, Rating: rating})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// State is the workflow state carried between orchestrator steps and
// exchanged with HTTP clients as JSON.
type State struct {
	Owner           string       `json:"owner"`
	Repo            string       `json:"repo"`
	Username        string       `json:"username"`
	Address         string       `json:"address"`
	RemainingBudget *big.Int     `json:"remaining_budget"`
	Action          Action       `json:"action"`
	CurrentIssue    *int         `json:"current_issue"`
	ActionItems     string       `json:"action_items"`
	Issues          IssueRatings `json:"issues"`
	RatingSum       int          `json:"rating_sum"`
	Message         string       `json:"message"`
}

// RepoID is the key under which the ledger stores the repository.
func (s *State) RepoID() string {
	return RepoID(s.Owner, s.Repo)
}

// SelectIssue points the state at the given issue.
func (s *State) SelectIssue(number int) {
	n := number
	s.CurrentIssue = &n
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	if s.RemainingBudget != nil {
		c.RemainingBudget = new(big.Int).Set(s.RemainingBudget)
	}
	if s.CurrentIssue != nil {
		c.SelectIssue(*s.CurrentIssue)
	}
	if s.Issues != nil {
		c.Issues = make(IssueRatings, len(s.Issues))
		for number, rating := range s.Issues {
			c.Issues[number] = rating
		}
	}
	return &c
}

// RepoID joins an owner and repository name into the "owner/repo" form.
func RepoID(owner, repo string) string {
	return owner + "/" + repo
}
