package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workdeck/workdeck-api/internal/api"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/service"
	"github.com/workdeck/workdeck-api/internal/service/auth"
	"github.com/workdeck/workdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "invalid refresh token", err: auth.ErrInvalidRefreshToken, want: http.StatusUnauthorized},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "forbidden", err: service.ErrForbidden, want: http.StatusForbidden},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "workspace not found", err: store.ErrWorkspaceNotFound, want: http.StatusNotFound},
		{name: "task not found", err: store.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "duplicate username", err: store.ErrUsernameExists, want: http.StatusBadRequest},
		{name: "duplicate workspace title", err: store.ErrWorkspaceTitleExists, want: http.StatusBadRequest},
		{name: "duplicate task title", err: store.ErrTaskTitleExists, want: http.StatusBadRequest},
		{name: "already completed", err: domain.ErrAlreadyCompleted, want: http.StatusBadRequest},
		{name: "not a member", err: service.ErrNotAMember, want: http.StatusBadRequest},
		{name: "admin removal", err: service.ErrAdminRemoval, want: http.StatusBadRequest},
		{name: "foreign tag", err: service.ErrForeignTag, want: http.StatusBadRequest},
		{name: "invalid color", err: domain.ErrInvalidColor, want: http.StatusBadRequest},
		{name: "wrapped sentinel", err: fmt.Errorf("creating workspace: %w", store.ErrWorkspaceTitleExists), want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("disk on fire"), want: http.StatusInternalServerError},
		{name: "nil-adjacent unknown", err: errors.New(""), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "An unexpected error occurred"},
		{name: "invalid token", err: auth.ErrInvalidToken, want: "Invalid token"},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: "Invalid credentials"},
		{name: "forbidden", err: service.ErrForbidden, want: "Permission denied"},
		{name: "workspace not found", err: store.ErrWorkspaceNotFound, want: "Workspace not found"},
		{name: "duplicate username", err: store.ErrUsernameExists, want: "Username already exists"},
		{name: "membership exists", err: store.ErrMembershipExists, want: "User is already a member"},
		{name: "already completed", err: domain.ErrAlreadyCompleted, want: "Task is already completed"},
		{name: "admin removal", err: service.ErrAdminRemoval, want: "The workspace admin cannot be removed"},
		{name: "foreign tag", err: service.ErrForeignTag, want: "Tag does not belong to this scope"},
		{name: "field validation", err: domain.NewValidationError("title", "is required", domain.ErrValidation), want: "Invalid title"},
		{name: "unknown hides details", err: errors.New("pq: connection reset by peer"), want: "An unexpected error occurred"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, api.GetSafeErrorMessage(tc.err))
		})
	}
}
