package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/store"
)

// MockUserTagStore implements store.UserTagStore for testing.
type MockUserTagStore struct {
	CreateFn     func(ctx context.Context, tag *domain.UserTag) error
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.UserTag, error)
	GetByIDsFn   func(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.UserTag, error)
}

var _ store.UserTagStore = (*MockUserTagStore)(nil)

// Create implements the UserTagStore interface.
func (m *MockUserTagStore) Create(ctx context.Context, tag *domain.UserTag) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tag)
	}
	return nil
}

// ListByUser implements the UserTagStore interface.
func (m *MockUserTagStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserTag, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []domain.UserTag{}, nil
}

// GetByIDs implements the UserTagStore interface.
func (m *MockUserTagStore) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.UserTag, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, userID, ids)
	}
	return []domain.UserTag{}, nil
}

// WithTx implements the UserTagStore interface. The mock ignores
// transactions.
func (m *MockUserTagStore) WithTx(tx *sql.Tx) store.UserTagStore {
	return m
}

// MockUserTaskStore implements store.UserTaskStore for testing.
type MockUserTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.UserTask) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.UserTask, error)
	ListByUserFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.UserTask, error)
	UpdateFn      func(ctx context.Context, task *domain.UserTask) error
	ReplaceTagsFn func(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error
}

var _ store.UserTaskStore = (*MockUserTaskStore)(nil)

// Create implements the UserTaskStore interface.
func (m *MockUserTaskStore) Create(ctx context.Context, task *domain.UserTask) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

// GetByID implements the UserTaskStore interface.
func (m *MockUserTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserTask, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

// ListByUser implements the UserTaskStore interface.
func (m *MockUserTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserTask, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*domain.UserTask{}, nil
}

// Update implements the UserTaskStore interface.
func (m *MockUserTaskStore) Update(ctx context.Context, task *domain.UserTask) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

// ReplaceTags implements the UserTaskStore interface.
func (m *MockUserTaskStore) ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	if m.ReplaceTagsFn != nil {
		return m.ReplaceTagsFn(ctx, taskID, tagIDs)
	}
	return nil
}

// WithTx implements the UserTaskStore interface. The mock ignores
// transactions.
func (m *MockUserTaskStore) WithTx(tx *sql.Tx) store.UserTaskStore {
	return m
}
