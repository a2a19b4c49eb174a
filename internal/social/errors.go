package social

import "errors"

// Errors returned by the relationship ledger operations. Handlers map these to
// HTTP statuses; every failure here is terminal for the request.
var (
	// ErrForbidden covers verification failures, self-targeting and
	// acting on a request addressed to someone else.
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrNotFound means the referenced account or request does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyFollowing is returned when a follow is attempted against an
	// account already present in the actor's following set.
	ErrAlreadyFollowing = errors.New("already following this account")

	// ErrNotFollower is returned when blocking an account that is neither a
	// follower nor already blocked.
	ErrNotFollower = errors.New("account is not among your followers")

	// ErrNoLedger means the caller has no relationship ledger yet, so there
	// is nothing to derive suggestions from.
	ErrNoLedger = errors.New("no relationship ledger found")
)
