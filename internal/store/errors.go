package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// Entity-specific not-found errors wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a workspace with an existing title).
	// Entity-specific duplicate errors wrap it.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails a database
	// constraint other than uniqueness, such as a foreign key violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors.

	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
	ErrWorkspaceNotFound = fmt.Errorf("%w: workspace", ErrNotFound)
	ErrTaskNotFound      = fmt.Errorf("%w: task", ErrNotFound)
	ErrTagNotFound       = fmt.Errorf("%w: tag", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("%w: membership", ErrNotFound)

	// Entity-specific "duplicate" errors.

	ErrUsernameExists       = fmt.Errorf("%w: username", ErrDuplicate)
	ErrEmailExists          = fmt.Errorf("%w: email", ErrDuplicate)
	ErrWorkspaceTitleExists = fmt.Errorf("%w: workspace title", ErrDuplicate)
	ErrTaskTitleExists      = fmt.Errorf("%w: task title", ErrDuplicate)
	ErrTagNameExists        = fmt.Errorf("%w: tag name", ErrDuplicate)
	ErrMembershipExists     = fmt.Errorf("%w: membership", ErrDuplicate)
	ErrTokenBlacklisted     = fmt.Errorf("%w: token already blacklisted", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
