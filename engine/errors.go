/*
errors.go - Centralized error types for the reconciliation core

PURPOSE:
  All core error types in one place. Collaborator packages (absence client,
  calendar source, config store) define their own transport and validation
  errors and may wrap these.

ERROR CATEGORIES:
  1. Parse errors - malformed period tokens
  2. Configuration errors - missing remote reason or user lookups

USAGE:
  Lookup helpers return errors instead of aborting the process from inside
  core logic. Callers classify with the helpers below:

    if engine.IsConfigurationError(err) {
        // fatal for the run, nothing partially applied
    }
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBadPeriodToken is returned for tokens without a leading W or M.
	ErrBadPeriodToken = errors.New("unrecognized period token")

	// ErrReasonNotFound is returned when the remote reasons list has no entry
	// with a required name. The remote list is assumed complete; its absence
	// is a configuration problem, not a transient one.
	ErrReasonNotFound = errors.New("absence reason not found")

	// ErrUserNotFound is returned when the remote users list has no entry
	// matching the requesting identity or its approver.
	ErrUserNotFound = errors.New("user not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// PeriodTokenError reports a token that could not be parsed at all.
type PeriodTokenError struct {
	Token string
}

func (e *PeriodTokenError) Error() string {
	return fmt.Sprintf("unrecognized period token %q (want W, W<n>[/<yy>], M, or M<n>[/<yy>])", e.Token)
}

func (e *PeriodTokenError) Unwrap() error { return ErrBadPeriodToken }

// ReasonNotFoundError reports a missing remote reason by name.
type ReasonNotFoundError struct {
	Name string
}

func (e *ReasonNotFoundError) Error() string {
	return fmt.Sprintf("no absence reason named %q on the remote service", e.Name)
}

func (e *ReasonNotFoundError) Unwrap() error { return ErrReasonNotFound }

// UserNotFoundError reports a missing remote user by id.
type UserNotFoundError struct {
	ID   string
	Role string // "me" or "approver"
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("no remote user %q (%s)", e.ID, e.Role)
}

func (e *UserNotFoundError) Unwrap() error { return ErrUserNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsParseError reports whether the error stems from a malformed period token.
func IsParseError(err error) bool {
	return errors.Is(err, ErrBadPeriodToken)
}

// IsConfigurationError reports whether the error is fatal remote-state
// misconfiguration (missing reason or user). Nothing is partially applied
// when one of these surfaces.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrReasonNotFound) || errors.Is(err, ErrUserNotFound)
}
