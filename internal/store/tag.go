package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
)

// TagStore defines the interface for workspace tag persistence.
type TagStore interface {
	// Create saves a new tag. Returns ErrTagNameExists if the name is
	// already used within the tag's workspace.
	Create(ctx context.Context, tag *domain.Tag) error

	// ListByWorkspace returns all tags owned by the workspace, ordered by
	// name.
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Tag, error)

	// GetByIDs resolves the given tag IDs within a single workspace. Tags
	// that do not exist or belong to another workspace are simply absent
	// from the result; the caller compares lengths to detect foreign tags.
	GetByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]domain.Tag, error)

	// WithTx returns a TagStore bound to the given transaction.
	WithTx(tx *sql.Tx) TagStore
}
