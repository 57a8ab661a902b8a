package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
)

// UserTagStore defines the interface for personal tag persistence.
type UserTagStore interface {
	// Create saves a new personal tag. Returns ErrTagNameExists if the
	// owner already has a tag with that name.
	Create(ctx context.Context, tag *domain.UserTag) error

	// ListByUser returns all of the user's tags, ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserTag, error)

	// GetByIDs resolves the given tag IDs within a single owner. IDs that
	// do not exist or belong to another user are absent from the result.
	GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.UserTag, error)

	// WithTx returns a UserTagStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserTagStore
}

// UserTaskStore defines the interface for personal task persistence.
// Personal tasks are never purged.
type UserTaskStore interface {
	// Create saves a new personal task. Returns ErrTaskTitleExists if the
	// owner already has a task with that title.
	Create(ctx context.Context, task *domain.UserTask) error

	// GetByID retrieves a personal task with its tags.
	// Returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserTask, error)

	// ListByUser returns all of the user's tasks in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserTask, error)

	// Update persists the task's title, status and final_at.
	// Returns ErrTaskNotFound if absent.
	Update(ctx context.Context, task *domain.UserTask) error

	// ReplaceTags sets the task's tag set to exactly the given tag IDs.
	ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error

	// WithTx returns a UserTaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserTaskStore
}
