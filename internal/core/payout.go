package core

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrNoRatingSum is returned when a payout is requested for a repository
	// whose ratings add up to zero.
	ErrNoRatingSum = errors.New("repository rating sum is zero")
	// ErrRatingExceedsSum is returned when an issue's rating is larger than
	// the repository's rating sum, which would pay out more than the budget.
	ErrRatingExceedsSum = errors.New("issue rating exceeds repository rating sum")
	// ErrInvalidIssueRating is returned for negative ratings and for issue
	// numbers below 1.
	ErrInvalidIssueRating = errors.New("issue numbers must be positive and ratings non-negative")
)

// Payout computes remaining * rating / ratingSum with integer division. The
// result never exceeds remaining.
func Payout(remaining, ratingSum *big.Int, rating int) (*big.Int, error) {
	if ratingSum == nil || ratingSum.Sign() <= 0 {
		return nil, ErrNoRatingSum
	}
	if rating < 0 {
		return nil, fmt.Errorf("%w: rating %d", ErrInvalidIssueRating, rating)
	}
	r := big.NewInt(int64(rating))
	if r.Cmp(ratingSum) > 0 {
		return nil, fmt.Errorf("%w: %d > %s", ErrRatingExceedsSum, rating, ratingSum)
	}
	if remaining == nil || remaining.Sign() <= 0 {
		return new(big.Int), nil
	}
	out := new(big.Int).Mul(remaining, r)
	return out.Quo(out, ratingSum), nil
}
