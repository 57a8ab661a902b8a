package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/service/authz"
	"github.com/workdeck/workdeck-api/internal/store"
)

// completedTaskRetention is how long completed workspace tasks are kept
// before the list path purges them.
const completedTaskRetention = 90 * 24 * time.Hour

// CreateTaskParams carries the fields accepted when creating a task.
type CreateTaskParams struct {
	Title   string
	Status  domain.TaskStatus
	FinalAt *time.Time
	TagIDs  []uuid.UUID
}

// UpdateTaskParams carries a partial task update. Nil fields are left
// unchanged.
type UpdateTaskParams struct {
	Title   *string
	Status  *domain.TaskStatus
	FinalAt *time.Time
	TagIDs  *[]uuid.UUID
}

// TaskService manages workspace-scoped tasks: lifecycle, assignment,
// tagging and the lazy retention purge on the list path.
type TaskService struct {
	db             *sql.DB // nil runs multi-step writes without a transaction
	taskStore      store.TaskStore
	tagStore       store.TagStore
	workspaceStore store.WorkspaceStore
	userStore      store.UserStore
	timeFunc       func() time.Time
	logger         *slog.Logger
}

// NewTaskService creates a TaskService.
// It returns an error if any of the required store dependencies are nil.
func NewTaskService(
	db *sql.DB,
	taskStore store.TaskStore,
	tagStore store.TagStore,
	workspaceStore store.WorkspaceStore,
	userStore store.UserStore,
	log *slog.Logger,
) (*TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if tagStore == nil {
		return nil, domain.NewValidationError("tagStore", "cannot be nil", domain.ErrValidation)
	}
	if workspaceStore == nil {
		return nil, domain.NewValidationError("workspaceStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskService{
		db:             db,
		taskStore:      taskStore,
		tagStore:       tagStore,
		workspaceStore: workspaceStore,
		userStore:      userStore,
		timeFunc:       time.Now,
		logger:         log.With(slog.String("component", "task_service")),
	}, nil
}

// inTaskTx runs fn against transactional task and tag stores when a database
// handle is available, and directly against the plain stores otherwise.
func (s *TaskService) inTaskTx(ctx context.Context, fn func(ctx context.Context, tasks store.TaskStore, tags store.TagStore) error) error {
	if s.db == nil {
		return fn(ctx, s.taskStore, s.tagStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.taskStore.WithTx(tx), s.tagStore.WithTx(tx))
	})
}

// List returns the workspace's tasks. As a side effect it first purges
// every completed task older than the retention window, across all
// workspaces; the purge runs on no other path.
func (s *TaskService) List(ctx context.Context, actorID, workspaceID uuid.UUID, opts store.ListTasksOptions) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cutoff := s.timeFunc().UTC().Add(-completedTaskRetention)
	if _, err := s.taskStore.DeleteCompletedBefore(ctx, cutoff); err != nil {
		log.Error("retention purge failed", slog.String("error", err.Error()))
		return nil, err
	}

	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewWorkspace(ws, actorID) {
		return nil, store.ErrWorkspaceNotFound
	}

	return s.taskStore.ListByWorkspace(ctx, workspaceID, opts)
}

// Create makes a new task in the workspace. Any member may create; tags
// must belong to the same workspace.
func (s *TaskService) Create(ctx context.Context, actorID, workspaceID uuid.UUID, params CreateTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTask(ws, actorID) {
		return nil, ErrForbidden
	}

	task, err := domain.NewTask(workspaceID, params.Title, params.Status)
	if err != nil {
		return nil, err
	}
	task.FinalAt = params.FinalAt

	tags, err := s.resolveTags(ctx, workspaceID, params.TagIDs)
	if err != nil {
		return nil, err
	}

	err = s.inTaskTx(ctx, func(ctx context.Context, tasks store.TaskStore, _ store.TagStore) error {
		if err := tasks.Create(ctx, task); err != nil {
			return err
		}
		return tasks.ReplaceTags(ctx, task.ID, params.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	task.Tags = tags

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("workspace_id", workspaceID.String()))
	return task, nil
}

// Get returns a task visible to the actor. Non-members of the owning
// workspace receive not-found.
func (s *TaskService) Get(ctx context.Context, actorID, taskID uuid.UUID) (*domain.Task, error) {
	task, _, err := s.loadVisible(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update to the task. Any workspace member may
// edit; nil fields are untouched.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uuid.UUID, params UpdateTaskParams) (*domain.Task, error) {
	task, ws, err := s.loadVisible(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTask(ws, actorID) {
		return nil, ErrForbidden
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.FinalAt != nil {
		task.FinalAt = params.FinalAt
	}

	var tags []domain.Tag
	if params.TagIDs != nil {
		tags, err = s.resolveTags(ctx, task.WorkspaceID, *params.TagIDs)
		if err != nil {
			return nil, err
		}
	}

	err = s.inTaskTx(ctx, func(ctx context.Context, tasks store.TaskStore, _ store.TagStore) error {
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}
		if params.TagIDs != nil {
			return tasks.ReplaceTags(ctx, task.ID, *params.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if params.TagIDs != nil {
		task.Tags = tags
	}

	return task, nil
}

// Delete removes a task. Workspace admin only.
func (s *TaskService) Delete(ctx context.Context, actorID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, ws, err := s.loadVisible(ctx, actorID, taskID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteTask(ws, actorID) {
		return ErrForbidden
	}

	if err := s.taskStore.Delete(ctx, task.ID); err != nil {
		return err
	}

	log.Info("task deleted",
		slog.String("task_id", task.ID.String()),
		slog.String("actor_id", actorID.String()))
	return nil
}

// Assign sets the task's assignee to the named user. Admin only; the
// target must already be a workspace member.
func (s *TaskService) Assign(ctx context.Context, actorID, taskID uuid.UUID, username string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, ws, err := s.loadVisible(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAssignTask(ws, actorID) {
		return nil, ErrForbidden
	}

	target, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !ws.IsMember(target.ID) {
		return nil, ErrNotAMember
	}

	task.AssignedTo = &target.ID
	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Info("task assigned",
		slog.String("task_id", task.ID.String()),
		slog.String("assignee_id", target.ID.String()))
	return task, nil
}

// Complete transitions the task to completed. Allowed for the workspace
// admin and the current assignee; the transition is one-way.
func (s *TaskService) Complete(ctx context.Context, actorID, taskID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, ws, err := s.loadVisible(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCompleteTask(ws, task, actorID) {
		return nil, ErrForbidden
	}

	if err := task.Complete(s.timeFunc()); err != nil {
		return nil, err
	}
	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Info("task completed",
		slog.String("task_id", task.ID.String()),
		slog.String("actor_id", actorID.String()))
	return task, nil
}

// ListTags returns the workspace's tags. Members only; non-members get
// not-found.
func (s *TaskService) ListTags(ctx context.Context, actorID, workspaceID uuid.UUID) ([]domain.Tag, error) {
	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewWorkspace(ws, actorID) {
		return nil, store.ErrWorkspaceNotFound
	}

	return s.tagStore.ListByWorkspace(ctx, workspaceID)
}

// CreateTag makes a new tag in the workspace. Any member may create;
// names are unique per workspace.
func (s *TaskService) CreateTag(ctx context.Context, actorID, workspaceID uuid.UUID, name, color string) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ws, err := s.workspaceStore.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditTask(ws, actorID) {
		return nil, ErrForbidden
	}

	tag, err := domain.NewTag(workspaceID, name, color)
	if err != nil {
		return nil, err
	}
	if err := s.tagStore.Create(ctx, tag); err != nil {
		return nil, err
	}

	log.Info("tag created",
		slog.String("tag_id", tag.ID.String()),
		slog.String("workspace_id", workspaceID.String()))
	return tag, nil
}

// loadVisible fetches a task and its workspace, masking both behind
// not-found when the actor is not a member.
func (s *TaskService) loadVisible(ctx context.Context, actorID, taskID uuid.UUID) (*domain.Task, *domain.Workspace, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	ws, err := s.workspaceStore.GetByID(ctx, task.WorkspaceID)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanViewWorkspace(ws, actorID) {
		return nil, nil, store.ErrTaskNotFound
	}

	return task, ws, nil
}

// resolveTags loads the given tag IDs and verifies every one belongs to
// the workspace. Repeated IDs count once.
func (s *TaskService) resolveTags(ctx context.Context, workspaceID uuid.UUID, ids []uuid.UUID) ([]domain.Tag, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if len(unique) == 0 {
		return []domain.Tag{}, nil
	}

	tags, err := s.tagStore.GetByIDs(ctx, workspaceID, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, ErrForeignTag
	}
	return tags, nil
}
