package access

import "errors"

// Error taxonomy for every access operation. All failures are surfaced
// synchronously to the caller and are never retried here: each one is
// either a caller-input error or a permanent-until-state-changes
// condition, not a transient infrastructure fault. HTTP translation
// belongs to the features layer.
var (
	// ErrNotFound means the referenced category, user, or resource does
	// not exist. Stores must return it (possibly wrapped) for missing
	// documents so callers never see driver-specific sentinels.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the caller is not a member (member-scoped
	// operations) or not the owner (owner-only operations).
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidOperation means a structurally disallowed transition:
	// the owner leaving their own category, or a forced removal that
	// targets the owner.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidToken means an invite token matched no stored hash.
	ErrInvalidToken = errors.New("invalid invite token")

	// ErrTokenExpired means the invite token matched but its expiry has
	// passed.
	ErrTokenExpired = errors.New("invite token expired")
)
