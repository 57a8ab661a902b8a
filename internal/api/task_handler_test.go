package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeck/workdeck-api/internal/api"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/mocks"
	"github.com/workdeck/workdeck-api/internal/service"
	"github.com/workdeck/workdeck-api/internal/store"
)

// taskHandlerFixture wires a TaskService over mocks and mounts the task
// and tag routes on a router.
type taskHandlerFixture struct {
	ws         *domain.Workspace
	task       *domain.Task
	adminID    uuid.UUID
	memberID   uuid.UUID
	outsiderID uuid.UUID
	taskStore  *mocks.MockTaskStore
	router     chi.Router
}

func newTaskHandlerFixture(t *testing.T) *taskHandlerFixture {
	t.Helper()

	f := &taskHandlerFixture{
		adminID:    uuid.New(),
		memberID:   uuid.New(),
		outsiderID: uuid.New(),
	}
	f.ws = memberedWorkspace(f.adminID, f.memberID)
	f.task = &domain.Task{
		ID:          uuid.New(),
		WorkspaceID: f.ws.ID,
		Title:       "ship the release",
		Status:      domain.TaskStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	f.taskStore = &mocks.MockTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			if id == f.task.ID {
				dup := *f.task
				return &dup, nil
			}
			return nil, store.ErrTaskNotFound
		},
		ListByWorkspaceFn: func(ctx context.Context, workspaceID uuid.UUID, opts store.ListTasksOptions) ([]*domain.Task, error) {
			return []*domain.Task{f.task}, nil
		},
		CreateFn:      func(ctx context.Context, task *domain.Task) error { return nil },
		UpdateFn:      func(ctx context.Context, task *domain.Task) error { return nil },
		ReplaceTagsFn: func(ctx context.Context, taskID uuid.UUID, tagIDs []uuid.UUID) error { return nil },
		DeleteCompletedBeforeFn: func(ctx context.Context, cutoff time.Time) (int64, error) {
			return 0, nil
		},
	}
	workspaceStore := &mocks.MockWorkspaceStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
			if id == f.ws.ID {
				return f.ws, nil
			}
			return nil, store.ErrWorkspaceNotFound
		},
	}
	userStore := &mocks.MockUserStore{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "bob" {
				return &domain.User{ID: f.memberID, Username: "bob", Email: "b@example.com"}, nil
			}
			return nil, store.ErrUserNotFound
		},
	}

	taskService, err := service.NewTaskService(
		nil, f.taskStore, &mocks.MockTagStore{}, workspaceStore, userStore, nil)
	require.NoError(t, err)

	h := api.NewTaskHandler(taskService, testLogger())
	tagHandler := api.NewTagHandler(taskService, testLogger())

	r := chi.NewRouter()
	r.Get("/workspaces/{id}/tasks", h.List)
	r.Post("/workspaces/{id}/tasks", h.Create)
	r.Get("/workspace/tasks/{id}", h.Get)
	r.Put("/workspace/tasks/{id}", h.Update)
	r.Delete("/workspace/tasks/{id}", h.Delete)
	r.Post("/workspace/tasks/{id}/add-user", h.Assign)
	r.Post("/workspace/tasks/{id}/complete", h.Complete)
	r.Get("/workspaces/{id}/tags", tagHandler.List)
	r.Post("/workspaces/{id}/tags", tagHandler.Create)
	f.router = r

	return f
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("member lists tasks", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodGet,
			"/workspaces/"+f.ws.ID.String()+"/tasks?status=pending&assigned=bob&tag=urgent&search=ship&ordering=title", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "ship the release", resp[0].Title)
	})

	t.Run("invalid status filter is a 400", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodGet,
			"/workspaces/"+f.ws.ID.String()+"/tasks?status=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("outsider gets not found", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.outsiderID, http.MethodGet,
			"/workspaces/"+f.ws.ID.String()+"/tasks", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture(t)
	rec := serveAs(t, f.router, f.memberID, http.MethodPost,
		"/workspaces/"+f.ws.ID.String()+"/tasks",
		api.CreateTaskRequest{Title: "write the changelog"})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "write the changelog", resp.Title)
	assert.Equal(t, "pending", resp.Status)
	assert.NotNil(t, resp.Tags)
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture(t)
	title := "ship the hotfix"
	rec := serveAs(t, f.router, f.memberID, http.MethodPut,
		"/workspace/tasks/"+f.task.ID.String(),
		api.UpdateTaskRequest{Title: &title})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ship the hotfix", resp.Title)
	assert.Equal(t, "pending", resp.Status)
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("admin deletes", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		f.taskStore.DeleteFn = func(ctx context.Context, id uuid.UUID) error { return nil }

		rec := serveAs(t, f.router, f.adminID, http.MethodDelete,
			"/workspace/tasks/"+f.task.ID.String(), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("member is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodDelete,
			"/workspace/tasks/"+f.task.ID.String(), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTaskHandlerAssign(t *testing.T) {
	t.Parallel()

	t.Run("admin assigns a member", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.adminID, http.MethodPost,
			"/workspace/tasks/"+f.task.ID.String()+"/add-user",
			api.AddUserRequest{Username: "bob"})

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.AssignedTo)
		assert.Equal(t, f.memberID.String(), *resp.AssignedTo)
	})

	t.Run("member may not assign", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodPost,
			"/workspace/tasks/"+f.task.ID.String()+"/add-user",
			api.AddUserRequest{Username: "bob"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTaskHandlerComplete(t *testing.T) {
	t.Parallel()

	t.Run("admin completes", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.adminID, http.MethodPost,
			"/workspace/tasks/"+f.task.ID.String()+"/complete", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "completed", resp.Status)
		assert.NotNil(t, resp.FinalAt)
	})

	t.Run("already completed is a 400", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		now := time.Now().UTC()
		f.task.Status = domain.TaskStatusCompleted
		f.task.FinalAt = &now

		rec := serveAs(t, f.router, f.adminID, http.MethodPost,
			"/workspace/tasks/"+f.task.ID.String()+"/complete", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already completed")
	})

	t.Run("unassigned member is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodPost,
			"/workspace/tasks/"+f.task.ID.String()+"/complete", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTagHandler(t *testing.T) {
	t.Parallel()

	t.Run("member creates and lists tags", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodPost,
			"/workspaces/"+f.ws.ID.String()+"/tags",
			api.CreateTagRequest{Name: "urgent", Color: "#ff0000"})

		require.Equal(t, http.StatusCreated, rec.Code)

		var tag domain.Tag
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tag))
		assert.Equal(t, "urgent", tag.Name)

		rec = serveAs(t, f.router, f.memberID, http.MethodGet,
			"/workspaces/"+f.ws.ID.String()+"/tags", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid color is a 400", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.memberID, http.MethodPost,
			"/workspaces/"+f.ws.ID.String()+"/tags",
			api.CreateTagRequest{Name: "urgent", Color: "red"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("outsider creating a tag is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.outsiderID, http.MethodPost,
			"/workspaces/"+f.ws.ID.String()+"/tags",
			api.CreateTagRequest{Name: "urgent", Color: "#ff0000"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("outsider listing tags gets not found", func(t *testing.T) {
		t.Parallel()

		f := newTaskHandlerFixture(t)
		rec := serveAs(t, f.router, f.outsiderID, http.MethodGet,
			"/workspaces/"+f.ws.ID.String()+"/tags", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
