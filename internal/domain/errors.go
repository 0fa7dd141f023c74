package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for form navigation and submission failures.
var (
	ErrInvalidTransition = errors.New("invalid form mode transition")
	ErrUnknownMode       = errors.New("unknown form mode")
	ErrUnknownRuleSet    = errors.New("unknown validation rule set")
	ErrSubmissionFailed  = errors.New("submission failed")
)
