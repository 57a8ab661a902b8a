package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeck/workdeck-api/internal/api/middleware"
	"github.com/workdeck/workdeck-api/internal/api/shared"
	"github.com/workdeck/workdeck-api/internal/mocks"
	"github.com/workdeck/workdeck-api/internal/service/auth"
)

type stubBlacklist struct {
	revoked bool
	err     error
}

func (s *stubBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revoked, s.err
}

func validatingJWTService(userID uuid.UUID) *mocks.MockJWTService {
	return &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			return &auth.Claims{UserID: userID, TokenType: "access"}, nil
		},
	}
}

func TestAuthenticatePassesValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	m := middleware.NewAuthMiddleware(validatingJWTService(userID), &stubBlacklist{})

	var gotUserID uuid.UUID
	var gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.GetUserID(r)
		require.True(t, ok)
		gotUserID = id
		gotToken = shared.GetAccessToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "good-token", gotToken)
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no bearer prefix", header: "Token abc"},
		{name: "missing token", header: "Bearer"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m := middleware.NewAuthMiddleware(validatingJWTService(uuid.New()), &stubBlacklist{})
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthenticateRejectsInvalidTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		validateErr error
		wantBody    string
	}{
		{name: "expired", validateErr: auth.ErrExpiredToken, wantBody: "Token expired"},
		{name: "invalid", validateErr: auth.ErrInvalidToken, wantBody: "Invalid token"},
		{name: "wrong type", validateErr: auth.ErrWrongTokenType, wantBody: "Invalid token"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
					return nil, tc.validateErr
				},
			}
			m := middleware.NewAuthMiddleware(jwtService, &stubBlacklist{})
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			req.Header.Set("Authorization", "Bearer bad-token")
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestAuthenticateRejectsBlacklistedToken(t *testing.T) {
	t.Parallel()

	m := middleware.NewAuthMiddleware(validatingJWTService(uuid.New()), &stubBlacklist{revoked: true})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()

	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token is blacklisted")
}

func TestAuthenticateBlacklistFailure(t *testing.T) {
	t.Parallel()

	m := middleware.NewAuthMiddleware(
		validatingJWTService(uuid.New()),
		&stubBlacklist{err: errors.New("connection refused")},
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()

	m.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
