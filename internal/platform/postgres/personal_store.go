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

// UserTagStore implements store.UserTagStore on PostgreSQL.
type UserTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserTagStore creates a PostgreSQL implementation of store.UserTagStore.
func NewUserTagStore(db store.DBTX, logger *slog.Logger) *UserTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_tag_store")),
	}
}

var _ store.UserTagStore = (*UserTagStore)(nil)

// Create implements store.UserTagStore.Create.
func (s *UserTagStore) Create(ctx context.Context, tag *domain.UserTag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO user_tags (id, user_id, name, color) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, tag.ID, tag.UserID, tag.Name, tag.Color)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create personal tag",
				slog.String("error", err.Error()),
				slog.String("tag_id", tag.ID.String()))
		}
		return mapped
	}

	log.Info("personal tag created",
		slog.String("tag_id", tag.ID.String()),
		slog.String("user_id", tag.UserID.String()))
	return nil
}

// ListByUser implements store.UserTagStore.ListByUser.
func (s *UserTagStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, color
		FROM user_tags
		WHERE user_id = $1
		ORDER BY name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list personal tags",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	return scanUserTags(rows)
}

// GetByIDs implements store.UserTagStore.GetByIDs.
func (s *UserTagStore) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.UserTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return []domain.UserTag{}, nil
	}

	args := []any{userID}
	placeholders := ""
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		args = append(args, id)
		placeholders += "$" + strconv.Itoa(len(args))
	}

	query := `
		SELECT id, user_id, name, color
		FROM user_tags
		WHERE user_id = $1 AND id IN (` + placeholders + `)`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to get personal tags by ids",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	return scanUserTags(rows)
}

// WithTx implements store.UserTagStore.WithTx.
func (s *UserTagStore) WithTx(tx *sql.Tx) store.UserTagStore {
	return &UserTagStore{db: tx, logger: s.logger}
}

func scanUserTags(rows *sql.Rows) ([]domain.UserTag, error) {
	tags := []domain.UserTag{}
	for rows.Next() {
		var tag domain.UserTag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// UserTaskStore implements store.UserTaskStore on PostgreSQL.
type UserTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserTaskStore creates a PostgreSQL implementation of store.UserTaskStore.
func NewUserTaskStore(db store.DBTX, logger *slog.Logger) *UserTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_task_store")),
	}
}

var _ store.UserTaskStore = (*UserTaskStore)(nil)

// Create implements store.UserTaskStore.Create.
func (s *UserTaskStore) Create(ctx context.Context, task *domain.UserTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("personal task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_tasks (id, user_id, title, status, created_at, final_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Status, task.CreatedAt, task.FinalAt,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create personal task",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
		}
		return mapped
	}

	log.Info("personal task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.UserTaskStore.GetByID.
func (s *UserTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task domain.UserTask
	var status string
	query := `
		SELECT id, user_id, title, status, created_at, final_at
		FROM user_tasks
		WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.UserID, &task.Title, &status, &task.CreatedAt, &task.FinalAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get personal task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}
	task.Status = domain.TaskStatus(status)

	tags, err := s.loadTags(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Tags = tags

	return &task, nil
}

// ListByUser implements store.UserTaskStore.ListByUser.
func (s *UserTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, status, created_at, final_at
		FROM user_tasks
		WHERE user_id = $1
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list personal tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	tasks := []*domain.UserTask{}
	for rows.Next() {
		var task domain.UserTask
		var status string
		if err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &status, &task.CreatedAt, &task.FinalAt,
		); err != nil {
			return nil, err
		}
		task.Status = domain.TaskStatus(status)
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		tags, err := s.loadTags(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	return tasks, nil
}

// Update implements store.UserTaskStore.Update.
func (s *UserTaskStore) Update(ctx context.Context, task *domain.UserTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("personal task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE user_tasks
		SET title = $1, status = $2, final_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, task.Title, task.Status, task.FinalAt, task.ID)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update personal task",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
		}
		return mapped
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// ReplaceTags implements store.UserTaskStore.ReplaceTags.
func (s *UserTaskStore) ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM user_task_tags WHERE task_id = $1`, taskID); err != nil {
		log.Error("failed to clear personal task tags",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return MapError(err)
	}

	for _, tagID := range tagIDs {
		query := `INSERT INTO user_task_tags (task_id, tag_id) VALUES ($1, $2)`
		if _, err := s.db.ExecContext(ctx, query, taskID, tagID); err != nil {
			return MapError(err)
		}
	}

	return nil
}

// WithTx implements store.UserTaskStore.WithTx.
func (s *UserTaskStore) WithTx(tx *sql.Tx) store.UserTaskStore {
	return &UserTaskStore{db: tx, logger: s.logger}
}

func (s *UserTaskStore) loadTags(ctx context.Context, taskID uuid.UUID) ([]domain.UserTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT tg.id, tg.user_id, tg.name, tg.color
		FROM user_task_tags tt
		JOIN user_tags tg ON tg.id = tt.tag_id
		WHERE tt.task_id = $1
		ORDER BY tg.name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		log.Error("failed to load personal task tags",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	return scanUserTags(rows)
}
