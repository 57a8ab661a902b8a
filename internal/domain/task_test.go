package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeck/workdeck-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("defaults to pending", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(uuid.New(), "ship the release", "")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Nil(t, task.FinalAt)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(uuid.New(), "", domain.TaskStatusPending)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

		_, err = domain.NewTask(uuid.Nil, "ship it", domain.TaskStatusPending)
		assert.ErrorIs(t, err, domain.ErrEmptyWorkspaceID)

		_, err = domain.NewTask(uuid.New(), "ship it", "cancelled")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestTaskComplete(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "ship the release", domain.TaskStatusInProgress)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, task.Complete(now))
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.FinalAt)
	assert.Equal(t, now, *task.FinalAt)

	// Completion is one-way.
	err = task.Complete(now.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)
	assert.Equal(t, now, *task.FinalAt)
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.TaskStatusPending.IsValid())
	assert.True(t, domain.TaskStatusInProgress.IsValid())
	assert.True(t, domain.TaskStatusCompleted.IsValid())
	assert.False(t, domain.TaskStatus("done").IsValid())
	assert.False(t, domain.TaskStatus("").IsValid())
}

func TestNewUserTask(t *testing.T) {
	t.Parallel()

	task, err := domain.NewUserTask(uuid.New(), "water the plants", "")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)

	_, err = domain.NewUserTask(uuid.Nil, "water the plants", "")
	assert.ErrorIs(t, err, domain.ErrEmptyUserID)
}

func TestUserTaskCompleteIsOneWay(t *testing.T) {
	t.Parallel()

	task, err := domain.NewUserTask(uuid.New(), "water the plants", "")
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, task.Complete(now))
	assert.ErrorIs(t, task.Complete(now), domain.ErrAlreadyCompleted)
}
