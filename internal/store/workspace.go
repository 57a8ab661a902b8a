package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
)

// ListWorkspacesOptions narrows and orders a workspace listing.
type ListWorkspacesOptions struct {
	// AdminUsername filters to workspaces administered by this username.
	AdminUsername string

	// Search matches a substring of the title or of any member username.
	Search string

	// OrderBy is "title" or "-title" for descending. Empty means the
	// store's natural order (creation time).
	OrderBy string
}

// WorkspaceStore defines the interface for workspace and membership
// persistence. Workspaces are always loaded with their full member set.
type WorkspaceStore interface {
	// Create saves a new workspace together with its membership rows.
	// Returns ErrWorkspaceTitleExists if the title is taken.
	Create(ctx context.Context, ws *domain.Workspace) error

	// GetByID retrieves a workspace with its members.
	// Returns ErrWorkspaceNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)

	// List returns the workspaces the given user belongs to (in any role),
	// deduplicated, filtered and ordered per opts.
	List(ctx context.Context, userID uuid.UUID, opts ListWorkspacesOptions) ([]*domain.Workspace, error)

	// Delete removes a workspace. Its tags, tasks and memberships cascade.
	// Returns ErrWorkspaceNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember inserts a membership row.
	// Returns ErrMembershipExists if the user is already a member.
	AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error

	// RemoveMember deletes a membership row.
	// Returns ErrMembershipNotFound if the user is not a member.
	RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error

	// WithTx returns a WorkspaceStore bound to the given transaction.
	WithTx(tx *sql.Tx) WorkspaceStore
}
