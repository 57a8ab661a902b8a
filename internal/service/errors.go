// Package service provides application-level services for users,
// workspaces, tasks and personal task lists.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is; the API layer maps them to HTTP status
// codes.
var (
	// ErrForbidden indicates the principal may see the target entity but is
	// not permitted to perform the attempted action on it.
	// API layer maps this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("permission denied")

	// ErrInvalidCredentials indicates a failed username/password check.
	// API layer maps this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAMember indicates an operation referenced a user who is not a
	// member of the workspace (e.g. assigning a task to an outsider).
	// API layer maps this to HTTP 400 Bad Request.
	ErrNotAMember = errors.New("user is not a workspace member")

	// ErrAdminRemoval indicates an attempt to remove the workspace admin
	// from its own workspace. The admin is always a member.
	// API layer maps this to HTTP 400 Bad Request.
	ErrAdminRemoval = errors.New("workspace admin cannot be removed")

	// ErrForeignTag indicates a task referenced a tag owned by a different
	// workspace or user. API layer maps this to HTTP 400 Bad Request.
	ErrForeignTag = errors.New("tag does not belong to this scope")
)
