package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/store"
)

// MockWorkspaceStore implements store.WorkspaceStore for testing.
type MockWorkspaceStore struct {
	CreateFn       func(ctx context.Context, ws *domain.Workspace) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListFn         func(ctx context.Context, userID uuid.UUID, opts store.ListWorkspacesOptions) ([]*domain.Workspace, error)
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	AddMemberFn    func(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error
	RemoveMemberFn func(ctx context.Context, workspaceID, userID uuid.UUID) error
	WithTxFn       func(tx *sql.Tx) store.WorkspaceStore
}

var _ store.WorkspaceStore = (*MockWorkspaceStore)(nil)

// Create implements the WorkspaceStore interface.
func (m *MockWorkspaceStore) Create(ctx context.Context, ws *domain.Workspace) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ws)
	}
	return nil
}

// GetByID implements the WorkspaceStore interface.
func (m *MockWorkspaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrWorkspaceNotFound
}

// List implements the WorkspaceStore interface.
func (m *MockWorkspaceStore) List(ctx context.Context, userID uuid.UUID, opts store.ListWorkspacesOptions) ([]*domain.Workspace, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, opts)
	}
	return []*domain.Workspace{}, nil
}

// Delete implements the WorkspaceStore interface.
func (m *MockWorkspaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// AddMember implements the WorkspaceStore interface.
func (m *MockWorkspaceStore) AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error {
	if m.AddMemberFn != nil {
		return m.AddMemberFn(ctx, workspaceID, userID, role)
	}
	return nil
}

// RemoveMember implements the WorkspaceStore interface.
func (m *MockWorkspaceStore) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	if m.RemoveMemberFn != nil {
		return m.RemoveMemberFn(ctx, workspaceID, userID)
	}
	return nil
}

// WithTx implements the WorkspaceStore interface. Unless WithTxFn is set,
// the mock ignores transactions.
func (m *MockWorkspaceStore) WithTx(tx *sql.Tx) store.WorkspaceStore {
	if m.WithTxFn != nil {
		return m.WithTxFn(tx)
	}
	return m
}
