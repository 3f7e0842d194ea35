package domain

import "errors"

// Sentinel errors raised by the core. The API layer maps each to exactly one
// HTTP status in the central error handler; messages are what clients see.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrBossNotFound       = errors.New("user with provided bossId does not exist")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Registration cross-field rules.
	ErrRegistrationRole = errors.New("only Administrator and Regular User are valid at registration")
	ErrAdminWithBoss    = errors.New("administrator cannot have a boss at registration")
	ErrBossRequired     = errors.New("boss is required for this role")

	ErrForbidden        = errors.New("forbidden")
	ErrSelfBoss         = errors.New("user cannot be his own boss")
	ErrInvalidHierarchy = errors.New("reassignment would create a cycle in the hierarchy")
	ErrAdminBoss        = errors.New("administrator cannot have a boss")

	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenInvalid   = errors.New("invalid token")

	// ErrInvalidRole marks a role value outside the known enum; unreachable
	// unless the stored data was corrupted out-of-band.
	ErrInvalidRole = errors.New("invalid role value")

	// ErrCycleDetected marks a forest-invariant violation discovered during a
	// traversal. It is a data-integrity fault, not a client error.
	ErrCycleDetected = errors.New("cycle detected in boss hierarchy")
)
