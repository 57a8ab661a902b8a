package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/store"
)

// TagStore implements store.TagStore on PostgreSQL.
type TagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTagStore creates a PostgreSQL implementation of store.TagStore.
// If logger is nil the process default is used.
func NewTagStore(db store.DBTX, logger *slog.Logger) *TagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

var _ store.TagStore = (*TagStore)(nil)

// Create implements store.TagStore.Create.
func (s *TagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO tags (id, workspace_id, name, color) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, tag.ID, tag.WorkspaceID, tag.Name, tag.Color)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create tag",
				slog.String("error", err.Error()),
				slog.String("tag_id", tag.ID.String()),
				slog.String("workspace_id", tag.WorkspaceID.String()))
		}
		return mapped
	}

	log.Info("tag created",
		slog.String("tag_id", tag.ID.String()),
		slog.String("workspace_id", tag.WorkspaceID.String()))
	return nil
}

// ListByWorkspace implements store.TagStore.ListByWorkspace.
func (s *TagStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, workspace_id, name, color
		FROM tags
		WHERE workspace_id = $1
		ORDER BY name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, workspaceID)
	if err != nil {
		log.Error("failed to list tags",
			slog.String("error", err.Error()),
			slog.String("workspace_id", workspaceID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	tags := []domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.WorkspaceID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// GetByIDs implements store.TagStore.GetByIDs. Tags that do not exist or
// belong to a different workspace are simply absent from the result.
func (s *TagStore) GetByIDs(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}

	args := []any{workspaceID}
	placeholders := ""
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		args = append(args, id)
		placeholders += "$" + strconv.Itoa(len(args))
	}

	query := `
		SELECT id, workspace_id, name, color
		FROM tags
		WHERE workspace_id = $1 AND id IN (` + placeholders + `)`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to get tags by ids",
			slog.String("error", err.Error()),
			slog.String("workspace_id", workspaceID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	tags := []domain.Tag{}
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.WorkspaceID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// WithTx implements store.TagStore.WithTx.
func (s *TagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &TagStore{db: tx, logger: s.logger}
}
