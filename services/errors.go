// services/errors.go
package services

import "errors"

// Workflow errors the handlers translate into HTTP statuses. Anything else
// bubbling out of a service is treated as a storage failure: logged, and
// returned to the caller as an opaque 500.
var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrCarNotFound        = errors.New("car not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrReactionNotFound   = errors.New("reaction not found")

	ErrInviteNotFound    = errors.New("invalid invite code")
	ErrInviteAlreadyUsed = errors.New("invite has already been used")
	ErrInviteExpired     = errors.New("invite has expired")
	ErrSelfInvite        = errors.New("cannot accept your own invite")

	ErrInvalidReaction = errors.New("invalid reaction type")

	ErrEmptyLineup = errors.New("at least one car is required")
	ErrTooManyCars = errors.New("a submission is limited to 5 cars")
	ErrOverBudget  = errors.New("total value exceeds the challenge budget")
	ErrOutsideEra  = errors.New("every car must fall within the challenge era")
)
