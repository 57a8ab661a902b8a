package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/store"
)

// TaskStore implements store.TaskStore on PostgreSQL.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a PostgreSQL implementation of store.TaskStore.
// If logger is nil the process default is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, workspace_id, title, status, created_at, final_at, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID, task.WorkspaceID, task.Title, task.Status,
		task.CreatedAt, task.FinalAt, task.AssignedTo,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create task",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("workspace_id", task.WorkspaceID.String()))
		}
		return mapped
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("workspace_id", task.WorkspaceID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task domain.Task
	var status string
	query := `
		SELECT id, workspace_id, title, status, created_at, final_at, assigned_to
		FROM tasks
		WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.WorkspaceID, &task.Title, &status,
		&task.CreatedAt, &task.FinalAt, &task.AssignedTo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
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

// taskSearchPredicate builds the free-text search clause for task lists.
// Search covers the title and the text forms of both timestamps, so a
// date fragment like "2026-03" matches tasks created or completed then.
func taskSearchPredicate(arg int) string {
	n := strconv.Itoa(arg)
	return ` AND (t.title ILIKE $` + n +
		` OR t.created_at::text ILIKE $` + n +
		` OR t.final_at::text ILIKE $` + n + `)`
}

// ListByWorkspace implements store.TaskStore.ListByWorkspace.
func (s *TaskStore) ListByWorkspace(
	ctx context.Context,
	workspaceID uuid.UUID,
	opts store.ListTasksOptions,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.workspace_id, t.title, t.status, t.created_at, t.final_at, t.assigned_to
		FROM tasks t
		WHERE t.workspace_id = $1
	`
	args := []any{workspaceID}

	if opts.Status != "" {
		args = append(args, opts.Status)
		query += ` AND t.status = $` + strconv.Itoa(len(args))
	}
	if opts.AssignedUsername != "" {
		args = append(args, opts.AssignedUsername)
		query += ` AND t.assigned_to = (SELECT id FROM users WHERE username = $` + strconv.Itoa(len(args)) + `)`
	}
	if opts.TagName != "" {
		args = append(args, opts.TagName)
		query += ` AND EXISTS (
			SELECT 1 FROM task_tags tt
			JOIN tags tg ON tg.id = tt.tag_id
			WHERE tt.task_id = t.id AND tg.name = $` + strconv.Itoa(len(args)) + `
		)`
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		query += taskSearchPredicate(len(args))
	}

	switch opts.OrderBy {
	case "title":
		query += ` ORDER BY t.title ASC`
	case "-title":
		query += ` ORDER BY t.title DESC`
	case "-created_at":
		query += ` ORDER BY t.created_at DESC`
	default:
		query += ` ORDER BY t.created_at ASC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("workspace_id", workspaceID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		var status string
		if err := rows.Scan(
			&task.ID, &task.WorkspaceID, &task.Title, &status,
			&task.CreatedAt, &task.FinalAt, &task.AssignedTo,
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

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, status = $2, final_at = $3, assigned_to = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title, task.Status, task.FinalAt, task.AssignedTo, task.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()))
		}
		return mapped
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// ReplaceTags implements store.TaskStore.ReplaceTags.
func (s *TaskStore) ReplaceTags(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `DELETE FROM task_tags WHERE task_id = $1`, taskID); err != nil {
		log.Error("failed to clear task tags",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
		return MapError(err)
	}

	for _, tagID := range tagIDs {
		query := `INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2)`
		if _, err := s.db.ExecContext(ctx, query, taskID, tagID); err != nil {
			return MapError(err)
		}
	}

	return nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// DeleteCompletedBefore implements store.TaskStore.DeleteCompletedBefore.
func (s *TaskStore) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE status = 'completed' AND final_at <= $1`
	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		log.Error("failed to purge completed tasks", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		log.Info("purged old completed tasks", slog.Int64("count", purged))
	}
	return purged, nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

func (s *TaskStore) loadTags(ctx context.Context, taskID uuid.UUID) ([]domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT tg.id, tg.workspace_id, tg.name, tg.color
		FROM task_tags tt
		JOIN tags tg ON tg.id = tt.tag_id
		WHERE tt.task_id = $1
		ORDER BY tg.name ASC
	`
	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		log.Error("failed to load task tags",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()))
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
