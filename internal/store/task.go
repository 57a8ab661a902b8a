package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
)

// ListTasksOptions narrows and orders a workspace task listing.
type ListTasksOptions struct {
	// Status filters by exact task status.
	Status domain.TaskStatus

	// AssignedUsername filters to tasks assigned to this username.
	AssignedUsername string

	// TagName filters to tasks carrying a tag with this name.
	TagName string

	// Search matches a substring of the title.
	Search string

	// OrderBy is one of "title", "-title", "created_at", "-created_at".
	// Empty means creation order.
	OrderBy string
}

// TaskStore defines the interface for workspace task persistence. Tasks
// are always loaded with their tag set.
type TaskStore interface {
	// Create saves a new task. Returns ErrTaskTitleExists if the title is
	// already used within the task's workspace.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task with its tags.
	// Returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByWorkspace returns the workspace's tasks filtered and ordered
	// per opts.
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, opts ListTasksOptions) ([]*domain.Task, error)

	// Update persists the task's title, status, final_at and assignee.
	// Tags are managed separately through ReplaceTags.
	// Returns ErrTaskNotFound if absent, ErrTaskTitleExists on a title
	// collision within the workspace.
	Update(ctx context.Context, task *domain.Task) error

	// ReplaceTags sets the task's tag set to exactly the given tag IDs.
	ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error

	// Delete removes a task. Returns ErrTaskNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteCompletedBefore removes every completed task whose final_at is
	// at or before the cutoff, across all workspaces. Returns the number
	// of tasks purged.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) TaskStore
}
