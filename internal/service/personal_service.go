package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/store"
)

// PersonalService manages a user's private tags and tasks. The owner is
// the only actor; anything owned by another user is reported as not-found.
// Personal tasks are never purged.
type PersonalService struct {
	db           *sql.DB // nil runs multi-step writes without a transaction
	userTagStore store.UserTagStore
	taskStore    store.UserTaskStore
	timeFunc     func() time.Time
	logger       *slog.Logger
}

// NewPersonalService creates a PersonalService.
// It returns an error if any of the required store dependencies are nil.
func NewPersonalService(
	db *sql.DB,
	userTagStore store.UserTagStore,
	taskStore store.UserTaskStore,
	log *slog.Logger,
) (*PersonalService, error) {
	if userTagStore == nil {
		return nil, domain.NewValidationError("userTagStore", "cannot be nil", domain.ErrValidation)
	}
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &PersonalService{
		db:           db,
		userTagStore: userTagStore,
		taskStore:    taskStore,
		timeFunc:     time.Now,
		logger:       log.With(slog.String("component", "personal_service")),
	}, nil
}

// ListTags returns the actor's personal tags.
func (s *PersonalService) ListTags(ctx context.Context, actorID uuid.UUID) ([]domain.UserTag, error) {
	return s.userTagStore.ListByUser(ctx, actorID)
}

// CreateTag makes a new personal tag for the actor.
func (s *PersonalService) CreateTag(ctx context.Context, actorID uuid.UUID, name, color string) (*domain.UserTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := domain.NewUserTag(actorID, name, color)
	if err != nil {
		return nil, err
	}

	if err := s.userTagStore.Create(ctx, tag); err != nil {
		return nil, err
	}

	log.Info("personal tag created",
		slog.String("tag_id", tag.ID.String()),
		slog.String("user_id", actorID.String()))
	return tag, nil
}

// ListTasks returns the actor's personal tasks in creation order.
func (s *PersonalService) ListTasks(ctx context.Context, actorID uuid.UUID) ([]*domain.UserTask, error) {
	return s.taskStore.ListByUser(ctx, actorID)
}

// CreateTask makes a new personal task for the actor. Tags must come from
// the actor's own tag set.
func (s *PersonalService) CreateTask(ctx context.Context, actorID uuid.UUID, params CreateTaskParams) (*domain.UserTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewUserTask(actorID, params.Title, params.Status)
	if err != nil {
		return nil, err
	}
	task.FinalAt = params.FinalAt

	tags, err := s.resolveTags(ctx, actorID, params.TagIDs)
	if err != nil {
		return nil, err
	}

	err = s.inTaskTx(ctx, func(ctx context.Context, tasks store.UserTaskStore) error {
		if err := tasks.Create(ctx, task); err != nil {
			return err
		}
		return tasks.ReplaceTags(ctx, task.ID, params.TagIDs)
	})
	if err != nil {
		return nil, err
	}
	task.Tags = tags

	log.Info("personal task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", actorID.String()))
	return task, nil
}

// GetTask returns one of the actor's personal tasks. Tasks owned by other
// users are reported as not-found.
func (s *PersonalService) GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*domain.UserTask, error) {
	return s.loadOwned(ctx, actorID, taskID)
}

// CompleteTask transitions a personal task to completed. One-way, owner
// only.
func (s *PersonalService) CompleteTask(ctx context.Context, actorID, taskID uuid.UUID) (*domain.UserTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.loadOwned(ctx, actorID, taskID)
	if err != nil {
		return nil, err
	}

	if err := task.Complete(s.timeFunc()); err != nil {
		return nil, err
	}
	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	log.Info("personal task completed",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", actorID.String()))
	return task, nil
}

func (s *PersonalService) inTaskTx(ctx context.Context, fn func(ctx context.Context, tasks store.UserTaskStore) error) error {
	if s.db == nil {
		return fn(ctx, s.taskStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.taskStore.WithTx(tx))
	})
}

func (s *PersonalService) loadOwned(ctx context.Context, actorID, taskID uuid.UUID) (*domain.UserTask, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != actorID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (s *PersonalService) resolveTags(ctx context.Context, actorID uuid.UUID, ids []uuid.UUID) ([]domain.UserTag, error) {
	if len(ids) == 0 {
		return []domain.UserTag{}, nil
	}

	tags, err := s.userTagStore.GetByIDs(ctx, actorID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrForeignTag
	}
	return tags, nil
}
