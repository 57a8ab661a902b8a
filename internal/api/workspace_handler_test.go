package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeck/workdeck-api/internal/api"
	"github.com/workdeck/workdeck-api/internal/api/shared"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/mocks"
	"github.com/workdeck/workdeck-api/internal/service"
	"github.com/workdeck/workdeck-api/internal/store"
)

// wsHandlerFixture bundles a workspace with its three actor roles and a
// router serving the workspace routes.
type wsHandlerFixture struct {
	ws         *domain.Workspace
	adminID    uuid.UUID
	memberID   uuid.UUID
	outsiderID uuid.UUID
	router     chi.Router
}

func newWsHandlerFixture(t *testing.T, workspaceStore store.WorkspaceStore, userStore store.UserStore) *wsHandlerFixture {
	t.Helper()

	if userStore == nil {
		userStore = &mocks.MockUserStore{}
	}
	workspaceService, err := service.NewWorkspaceService(nil, workspaceStore, userStore, nil)
	require.NoError(t, err)

	h := api.NewWorkspaceHandler(workspaceService, testLogger())

	r := chi.NewRouter()
	r.Get("/workspaces", h.List)
	r.Post("/workspaces", h.Create)
	r.Get("/workspaces/{id}", h.Get)
	r.Delete("/workspaces/{id}", h.Delete)
	r.Post("/workspaces/{id}/add-user", h.AddUser)
	r.Post("/workspaces/{id}/remove-user", h.RemoveUser)

	return &wsHandlerFixture{router: r}
}

func serveAs(t *testing.T, router chi.Router, userID uuid.UUID, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func memberedWorkspace(adminID, memberID uuid.UUID) *domain.Workspace {
	return &domain.Workspace{
		ID:    uuid.New(),
		Title: "engineering",
		Members: []domain.Member{
			{UserID: adminID, Username: "alice", Role: domain.RoleAdmin},
			{UserID: memberID, Username: "bob", Role: domain.RoleMember},
		},
	}
}

func TestWorkspaceHandlerCreate(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	userStore := &mocks.MockUserStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: adminID, Username: "alice", Email: "a@example.com"}, nil
		},
	}
	workspaceStore := &mocks.MockWorkspaceStore{
		CreateFn: func(ctx context.Context, ws *domain.Workspace) error { return nil },
	}
	f := newWsHandlerFixture(t, workspaceStore, userStore)

	rec := serveAs(t, f.router, adminID, http.MethodPost, "/workspaces",
		api.CreateWorkspaceRequest{Title: "engineering", Description: "the eng team"})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.Workspace
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "engineering", resp.Title)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, domain.RoleAdmin, resp.Members[0].Role)
}

func TestWorkspaceHandlerGetMasksOutsiders(t *testing.T) {
	t.Parallel()

	adminID, memberID, outsiderID := uuid.New(), uuid.New(), uuid.New()
	ws := memberedWorkspace(adminID, memberID)
	workspaceStore := &mocks.MockWorkspaceStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
			if id == ws.ID {
				return ws, nil
			}
			return nil, store.ErrWorkspaceNotFound
		},
	}
	f := newWsHandlerFixture(t, workspaceStore, nil)

	rec := serveAs(t, f.router, memberID, http.MethodGet, "/workspaces/"+ws.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveAs(t, f.router, outsiderID, http.MethodGet, "/workspaces/"+ws.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Workspace not found")
}

func TestWorkspaceHandlerAddUser(t *testing.T) {
	t.Parallel()

	adminID, memberID, outsiderID := uuid.New(), uuid.New(), uuid.New()
	carolID := uuid.New()
	ws := memberedWorkspace(adminID, memberID)

	newFixture := func() *wsHandlerFixture {
		workspaceStore := &mocks.MockWorkspaceStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
				if id == ws.ID {
					return ws, nil
				}
				return nil, store.ErrWorkspaceNotFound
			},
			AddMemberFn: func(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error {
				return nil
			},
		}
		userStore := &mocks.MockUserStore{
			GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				if username == "carol" {
					return &domain.User{ID: carolID, Username: "carol", Email: "c@example.com"}, nil
				}
				return nil, store.ErrUserNotFound
			},
		}
		return newWsHandlerFixture(t, workspaceStore, userStore)
	}

	t.Run("admin adds a user", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		rec := serveAs(t, f.router, adminID, http.MethodPost,
			"/workspaces/"+ws.ID.String()+"/add-user", api.AddUserRequest{Username: "carol"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin member is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		rec := serveAs(t, f.router, memberID, http.MethodPost,
			"/workspaces/"+ws.ID.String()+"/add-user", api.AddUserRequest{Username: "carol"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		rec := serveAs(t, f.router, outsiderID, http.MethodPost,
			"/workspaces/"+ws.ID.String()+"/add-user", api.AddUserRequest{Username: "carol"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown username is a 404", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		rec := serveAs(t, f.router, adminID, http.MethodPost,
			"/workspaces/"+ws.ID.String()+"/add-user", api.AddUserRequest{Username: "mallory"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWorkspaceHandlerRemoveUser(t *testing.T) {
	t.Parallel()

	adminID, memberID := uuid.New(), uuid.New()
	ws := memberedWorkspace(adminID, memberID)
	workspaceStore := &mocks.MockWorkspaceStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
			return ws, nil
		},
		RemoveMemberFn: func(ctx context.Context, workspaceID, userID uuid.UUID) error {
			return nil
		},
	}
	f := newWsHandlerFixture(t, workspaceStore, nil)

	t.Run("admin removes a member", func(t *testing.T) {
		rec := serveAs(t, f.router, adminID, http.MethodPost,
			"/workspaces/"+ws.ID.String()+"/remove-user", api.AddUserRequest{Username: "bob"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("removing the admin is a 400", func(t *testing.T) {
		rec := serveAs(t, f.router, adminID, http.MethodPost,
			"/workspaces/"+ws.ID.String()+"/remove-user", api.AddUserRequest{Username: "alice"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "admin cannot be removed")
	})
}
