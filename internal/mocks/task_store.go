package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn                func(ctx context.Context, task *domain.Task) error
	GetByIDFn               func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByWorkspaceFn       func(ctx context.Context, workspaceID uuid.UUID, opts store.ListTasksOptions) ([]*domain.Task, error)
	UpdateFn                func(ctx context.Context, task *domain.Task) error
	ReplaceTagsFn           func(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error
	DeleteFn                func(ctx context.Context, id uuid.UUID) error
	DeleteCompletedBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

// GetByID implements the TaskStore interface.
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

// ListByWorkspace implements the TaskStore interface.
func (m *MockTaskStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, opts store.ListTasksOptions) ([]*domain.Task, error) {
	if m.ListByWorkspaceFn != nil {
		return m.ListByWorkspaceFn(ctx, workspaceID, opts)
	}
	return []*domain.Task{}, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

// ReplaceTags implements the TaskStore interface.
func (m *MockTaskStore) ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	if m.ReplaceTagsFn != nil {
		return m.ReplaceTagsFn(ctx, taskID, tagIDs)
	}
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// DeleteCompletedBefore implements the TaskStore interface.
func (m *MockTaskStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteCompletedBeforeFn != nil {
		return m.DeleteCompletedBeforeFn(ctx, cutoff)
	}
	return 0, nil
}

// WithTx implements the TaskStore interface. The mock ignores transactions.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
