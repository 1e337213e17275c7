package core

import (
	"context"
	"math/big"
)

// IssueRating pairs an issue number with its difficulty rating.
type IssueRating struct {
	Number int `json:"issue_number"`
	Rating int `json:"rating"`
}

// RepoState is the durable per-repository record kept by the ledger contract.
type RepoState struct {
	OwnerName       string   `json:"owner"`
	RepoName        string   `json:"repo_name"`
	RemainingBudget *big.Int `json:"remaining_budget"`
	RatingSum       *big.Int `json:"rating_sum"`
}

// Registered reports whether the record belongs to a registered repository.
// Unknown keys come back from the contract as zero-valued structs.
func (s *RepoState) Registered() bool {
	return s != nil && s.OwnerName != ""
}

// Ledger records users, repositories, issue ratings and reward payouts on
// the bounty contract. Write methods block until the transaction is mined.
//
//go:generate mockgen -destination=../../mocks/mock_ledger.go -package=mocks . Ledger
type Ledger interface {
	RegisterUser(ctx context.Context, username, wallet string) error
	RegisterRepo(ctx context.Context, owner, repo string) error
	UpdateIssues(ctx context.Context, repoID string, ratings []IssueRating, totalRating int) error
	ResolveIssue(ctx context.Context, repoID string, issueNumber int, username string, amount *big.Int) error

	Owner(ctx context.Context) (string, error)
	GetRepoState(ctx context.Context, repoID string) (*RepoState, error)
	CheckRepoRegistration(ctx context.Context, repoID string) (bool, error)
	GetContributorAddress(ctx context.Context, username string) (string, error)
}
