package password

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of
// these sentinels, so callers can classify failures with errors.Is without
// parsing messages.
var (
	// ErrInputValidation marks bad caller parameters: a length or word
	// count outside the policy bounds, or an unknown category/strength.
	// Reported before any randomness is drawn.
	ErrInputValidation = errors.New("input validation failed")

	// ErrPolicyViolation marks an exhausted attempt ceiling: no candidate
	// satisfying the policy was produced within the configured retries.
	ErrPolicyViolation = errors.New("policy requirements not met")

	// ErrResource marks a missing or unusable word corpus when passphrase
	// generation is requested.
	ErrResource = errors.New("resource unavailable")

	// ErrConfiguration marks a policy whose exclusions emptied a character
	// class that the requested category needs.
	ErrConfiguration = errors.New("invalid generator configuration")
)
