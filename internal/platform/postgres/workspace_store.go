package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/store"
)

// WorkspaceStore implements store.WorkspaceStore on PostgreSQL.
type WorkspaceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewWorkspaceStore creates a PostgreSQL implementation of
// store.WorkspaceStore. If logger is nil the process default is used.
func NewWorkspaceStore(db store.DBTX, logger *slog.Logger) *WorkspaceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WorkspaceStore{
		db:     db,
		logger: logger.With(slog.String("component", "workspace_store")),
	}
}

var _ store.WorkspaceStore = (*WorkspaceStore)(nil)

// Create implements store.WorkspaceStore.Create. The workspace row and its
// membership rows are inserted together; callers wanting atomicity run it
// inside RunInTransaction via WithTx.
func (s *WorkspaceStore) Create(ctx context.Context, ws *domain.Workspace) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ws.Validate(); err != nil {
		log.Warn("workspace validation failed during create",
			slog.String("error", err.Error()),
			slog.String("workspace_id", ws.ID.String()))
		return err
	}

	query := `
		INSERT INTO workspaces (id, title, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, ws.ID, ws.Title, ws.Description, ws.CreatedAt); err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create workspace",
				slog.String("error", err.Error()),
				slog.String("workspace_id", ws.ID.String()))
		}
		return mapped
	}

	for _, m := range ws.Members {
		if err := s.AddMember(ctx, ws.ID, m.UserID, m.Role); err != nil {
			return err
		}
	}

	log.Info("workspace created",
		slog.String("workspace_id", ws.ID.String()),
		slog.String("title", ws.Title))
	return nil
}

// GetByID implements store.WorkspaceStore.GetByID.
func (s *WorkspaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var ws domain.Workspace
	query := `
		SELECT id, title, description, created_at
		FROM workspaces
		WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(&ws.ID, &ws.Title, &ws.Description, &ws.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWorkspaceNotFound
		}
		log.Error("failed to get workspace",
			slog.String("error", err.Error()),
			slog.String("workspace_id", id.String()))
		return nil, err
	}

	members, err := s.loadMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	ws.Members = members

	return &ws, nil
}

// List implements store.WorkspaceStore.List.
func (s *WorkspaceStore) List(
	ctx context.Context,
	userID uuid.UUID,
	opts store.ListWorkspacesOptions,
) ([]*domain.Workspace, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT w.id, w.title, w.description, w.created_at
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.id
		WHERE m.user_id = $1
	`
	args := []any{userID}

	if opts.AdminUsername != "" {
		args = append(args, opts.AdminUsername)
		query += `
		AND EXISTS (
			SELECT 1 FROM memberships ma
			JOIN users ua ON ua.id = ma.user_id
			WHERE ma.workspace_id = w.id AND ma.role = 'admin' AND ua.username = $2
		)`
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		query += `
		AND (w.title ILIKE $` + strconv.Itoa(n) + ` OR EXISTS (
			SELECT 1 FROM memberships ms
			JOIN users us ON us.id = ms.user_id
			WHERE ms.workspace_id = w.id AND us.username ILIKE $` + strconv.Itoa(n) + `
		))`
	}

	switch opts.OrderBy {
	case "title":
		query += ` ORDER BY w.title ASC`
	case "-title":
		query += ` ORDER BY w.title DESC`
	default:
		query += ` ORDER BY w.created_at ASC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list workspaces", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	workspaces := []*domain.Workspace{}
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.Title, &ws.Description, &ws.CreatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, &ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ws := range workspaces {
		members, err := s.loadMembers(ctx, ws.ID)
		if err != nil {
			return nil, err
		}
		ws.Members = members
	}

	return workspaces, nil
}

// Delete implements store.WorkspaceStore.Delete. Tags, tasks and
// memberships cascade through foreign keys.
func (s *WorkspaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete workspace",
			slog.String("error", err.Error()),
			slog.String("workspace_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrWorkspaceNotFound); err != nil {
		return err
	}

	log.Info("workspace deleted", slog.String("workspace_id", id.String()))
	return nil
}

// AddMember implements store.WorkspaceStore.AddMember.
func (s *WorkspaceStore) AddMember(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO memberships (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, workspaceID, userID, role); err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to add member",
				slog.String("error", err.Error()),
				slog.String("workspace_id", workspaceID.String()),
				slog.String("user_id", userID.String()))
		}
		return mapped
	}

	log.Info("member added",
		slog.String("workspace_id", workspaceID.String()),
		slog.String("user_id", userID.String()),
		slog.String("role", string(role)))
	return nil
}

// RemoveMember implements store.WorkspaceStore.RemoveMember.
func (s *WorkspaceStore) RemoveMember(ctx context.Context, workspaceID, userID uuid.UUID) error {
	query := `DELETE FROM memberships WHERE workspace_id = $1 AND user_id = $2`
	result, err := s.db.ExecContext(ctx, query, workspaceID, userID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrMembershipNotFound)
}

// WithTx implements store.WorkspaceStore.WithTx.
func (s *WorkspaceStore) WithTx(tx *sql.Tx) store.WorkspaceStore {
	return &WorkspaceStore{db: tx, logger: s.logger}
}

func (s *WorkspaceStore) loadMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.Member, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT m.user_id, u.username, m.role
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.workspace_id = $1
		ORDER BY u.username ASC
	`
	rows, err := s.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		log.Error("failed to load members",
			slog.String("error", err.Error()),
			slog.String("workspace_id", workspaceID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		var role string
		if err := rows.Scan(&m.UserID, &m.Username, &role); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		members = append(members, m)
	}
	return members, rows.Err()
}

// closeRows closes rows and logs close failures, which would otherwise be
// silently dropped in defer position.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
