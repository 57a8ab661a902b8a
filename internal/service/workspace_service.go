package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/service/authz"
	"github.com/workdeck/workdeck-api/internal/store"
)

// WorkspaceService manages workspaces and their memberships. Denied
// visibility is reported as not-found to avoid leaking existence; denied
// actions on visible workspaces are reported as forbidden.
type WorkspaceService struct {
	db             *sql.DB // nil runs multi-step writes without a transaction
	workspaceStore store.WorkspaceStore
	userStore      store.UserStore
	logger         *slog.Logger
}

// NewWorkspaceService creates a WorkspaceService.
// It returns an error if any of the required store dependencies are nil.
func NewWorkspaceService(
	db *sql.DB,
	workspaceStore store.WorkspaceStore,
	userStore store.UserStore,
	log *slog.Logger,
) (*WorkspaceService, error) {
	if workspaceStore == nil {
		return nil, domain.NewValidationError("workspaceStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &WorkspaceService{
		db:             db,
		workspaceStore: workspaceStore,
		userStore:      userStore,
		logger:         log.With(slog.String("component", "workspace_service")),
	}, nil
}

// inWorkspaceTx runs fn against a transactional workspace store when a
// database handle is available, and directly against the plain store
// otherwise.
func (s *WorkspaceService) inWorkspaceTx(ctx context.Context, fn func(ctx context.Context, workspaces store.WorkspaceStore) error) error {
	if s.db == nil {
		return fn(ctx, s.workspaceStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.workspaceStore.WithTx(tx))
	})
}

// Create makes a new workspace with the actor as its admin. The workspace
// row and the admin membership commit together, so a workspace is never
// observable without its admin among the members.
func (s *WorkspaceService) Create(ctx context.Context, actorID uuid.UUID, title, description string) (*domain.Workspace, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	actor, err := s.userStore.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	ws, err := domain.NewWorkspace(title, description, actor.ID, actor.Username)
	if err != nil {
		return nil, err
	}

	err = s.inWorkspaceTx(ctx, func(ctx context.Context, workspaces store.WorkspaceStore) error {
		return workspaces.Create(ctx, ws)
	})
	if err != nil {
		return nil, err
	}

	log.Info("workspace created",
		slog.String("workspace_id", ws.ID.String()),
		slog.String("admin_id", actor.ID.String()))
	return ws, nil
}

// List returns the workspaces the actor belongs to, filtered and ordered
// per opts.
func (s *WorkspaceService) List(ctx context.Context, actorID uuid.UUID, opts store.ListWorkspacesOptions) ([]*domain.Workspace, error) {
	return s.workspaceStore.List(ctx, actorID, opts)
}

// Get returns a workspace visible to the actor. Non-members receive
// not-found rather than forbidden.
func (s *WorkspaceService) Get(ctx context.Context, actorID, workspaceID uuid.UUID) (*domain.Workspace, error) {
	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewWorkspace(ws, actorID) {
		return nil, store.ErrWorkspaceNotFound
	}
	return ws, nil
}

// Delete removes a workspace and everything it owns. Admin only; member
// attempts yield forbidden, outsiders not-found.
func (s *WorkspaceService) Delete(ctx context.Context, actorID, workspaceID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !authz.CanViewWorkspace(ws, actorID) {
		return store.ErrWorkspaceNotFound
	}
	if !authz.CanDeleteWorkspace(ws, actorID) {
		return ErrForbidden
	}

	if err := s.workspaceStore.Delete(ctx, workspaceID); err != nil {
		return err
	}

	log.Info("workspace deleted",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}

// AddMember adds the named user to the workspace. Admin only.
func (s *WorkspaceService) AddMember(ctx context.Context, actorID, workspaceID uuid.UUID, username string) (*domain.Workspace, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageMembers(ws, actorID) {
		return nil, ErrForbidden
	}

	target, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.workspaceStore.AddMember(ctx, workspaceID, target.ID, domain.RoleMember); err != nil {
		return nil, err
	}

	log.Info("member added",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("user_id", target.ID.String()))

	return s.workspaceStore.GetByID(ctx, workspaceID)
}

// RemoveMember removes the named user from the workspace. Admin only; the
// admin itself can never be removed.
func (s *WorkspaceService) RemoveMember(ctx context.Context, actorID, workspaceID uuid.UUID, username string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !authz.CanManageMembers(ws, actorID) {
		return ErrForbidden
	}

	member, ok := ws.MemberByUsername(username)
	if !ok {
		return store.ErrMembershipNotFound
	}
	if member.Role == domain.RoleAdmin {
		return ErrAdminRemoval
	}

	if err := s.workspaceStore.RemoveMember(ctx, workspaceID, member.UserID); err != nil {
		return err
	}

	log.Info("member removed",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("user_id", member.UserID.String()))
	return nil
}
