package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task validation errors.
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a workspace-scoped work item. Titles are unique within a
// workspace, tags are always a subset of the workspace's tags, and the
// assignee (if any) must be a workspace member.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	WorkspaceID uuid.UUID  `json:"-"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	FinalAt     *time.Time `json:"final_at"`
	AssignedTo  *uuid.UUID `json:"-"`
	Tags        []Tag      `json:"tags"`
}

// NewTask creates a Task in the given workspace. An empty status defaults
// to pending.
func NewTask(workspaceID uuid.UUID, title string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Title:       title,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's fields.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.WorkspaceID == uuid.Nil {
		return ErrEmptyWorkspaceID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Complete transitions the task to completed and stamps final_at.
// The transition is one-way: completing an already completed task returns
// ErrAlreadyCompleted rather than silently succeeding.
func (t *Task) Complete(now time.Time) error {
	if t.Status == TaskStatusCompleted {
		return ErrAlreadyCompleted
	}
	t.Status = TaskStatusCompleted
	at := now.UTC()
	t.FinalAt = &at
	return nil
}

// UserTask is the personal analog of Task: owned by a single user, tagged
// from that user's UserTag set, with no assignment concept.
type UserTask struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"-"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	FinalAt   *time.Time `json:"final_at"`
	Tags      []UserTag  `json:"tags"`
}

// NewUserTask creates a UserTask owned by the given user. An empty status
// defaults to pending.
func NewUserTask(userID uuid.UUID, title string, status TaskStatus) (*UserTask, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &UserTask{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the UserTask's fields.
func (t *UserTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Complete transitions the personal task to completed, with the same
// one-way rule as workspace tasks.
func (t *UserTask) Complete(now time.Time) error {
	if t.Status == TaskStatusCompleted {
		return ErrAlreadyCompleted
	}
	t.Status = TaskStatusCompleted
	at := now.UTC()
	t.FinalAt = &at
	return nil
}
