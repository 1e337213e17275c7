package workflow

import "errors"

var (
	// ErrStepLimitExceeded is returned when a run executes more nodes than
	// the configured limit.
	ErrStepLimitExceeded = errors.New("workflow step limit exceeded")
	ErrMissingField      = errors.New("missing required field")
	ErrRepoNotRegistered = errors.New("repository is not registered on the ledger")
	ErrUserNotRegistered = errors.New("user has no registered wallet")
	ErrIssueNotRated     = errors.New("issue has no rating")
)
