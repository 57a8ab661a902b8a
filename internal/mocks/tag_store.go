package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/store"
)

// MockTagStore implements store.TagStore for testing.
type MockTagStore struct {
	CreateFn          func(ctx context.Context, tag *domain.Tag) error
	ListByWorkspaceFn func(ctx context.Context, workspaceID uuid.UUID) ([]domain.Tag, error)
	GetByIDsFn        func(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]domain.Tag, error)
}

var _ store.TagStore = (*MockTagStore)(nil)

// Create implements the TagStore interface.
func (m *MockTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tag)
	}
	return nil
}

// ListByWorkspace implements the TagStore interface.
func (m *MockTagStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Tag, error) {
	if m.ListByWorkspaceFn != nil {
		return m.ListByWorkspaceFn(ctx, workspaceID)
	}
	return []domain.Tag{}, nil
}

// GetByIDs implements the TagStore interface.
func (m *MockTagStore) GetByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]domain.Tag, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, workspaceID, ids)
	}
	return []domain.Tag{}, nil
}

// WithTx implements the TagStore interface. The mock ignores transactions.
func (m *MockTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return m
}
