package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/store"
)

// mockTokenStore is a function-field test double for store.TokenStore.
type mockTokenStore struct {
	blacklistFn     func(ctx context.Context, token *domain.BlacklistedToken) error
	isBlacklistedFn func(ctx context.Context, token string) (bool, error)
}

func (m *mockTokenStore) Blacklist(ctx context.Context, token *domain.BlacklistedToken) error {
	if m.blacklistFn != nil {
		return m.blacklistFn(ctx, token)
	}
	return nil
}

func (m *mockTokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	if m.isBlacklistedFn != nil {
		return m.isBlacklistedFn(ctx, token)
	}
	return false, nil
}

func TestBlacklistServiceRevoke(t *testing.T) {
	t.Parallel()

	t.Run("revokes both session tokens", func(t *testing.T) {
		t.Parallel()

		var recorded []string
		ts := &mockTokenStore{
			blacklistFn: func(ctx context.Context, token *domain.BlacklistedToken) error {
				recorded = append(recorded, token.Token)
				assert.False(t, token.BlacklistedAt.IsZero())
				return nil
			},
		}

		svc := NewBlacklistService(ts, nil)
		err := svc.Revoke(context.Background(), "access-token", "refresh-token")
		require.NoError(t, err)
		assert.Equal(t, []string{"access-token", "refresh-token"}, recorded)
	})

	t.Run("already revoked token is an error", func(t *testing.T) {
		t.Parallel()

		ts := &mockTokenStore{
			blacklistFn: func(ctx context.Context, token *domain.BlacklistedToken) error {
				return store.ErrTokenBlacklisted
			},
		}

		svc := NewBlacklistService(ts, nil)
		assert.ErrorIs(t, svc.Revoke(context.Background(), "already-gone"), store.ErrTokenBlacklisted)
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		t.Parallel()

		svc := NewBlacklistService(&mockTokenStore{}, nil)
		err := svc.Revoke(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrEmptyToken)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("db down")
		ts := &mockTokenStore{
			blacklistFn: func(ctx context.Context, token *domain.BlacklistedToken) error {
				return boom
			},
		}

		svc := NewBlacklistService(ts, nil)
		assert.ErrorIs(t, svc.Revoke(context.Background(), "token"), boom)
	})
}

func TestBlacklistServiceIsRevoked(t *testing.T) {
	t.Parallel()

	ts := &mockTokenStore{
		isBlacklistedFn: func(ctx context.Context, token string) (bool, error) {
			return token == "revoked", nil
		},
	}

	svc := NewBlacklistService(ts, nil)

	revoked, err := svc.IsRevoked(context.Background(), "revoked")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsRevoked(context.Background(), "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestBlacklistServiceUsesUTC(t *testing.T) {
	t.Parallel()

	var got time.Time
	ts := &mockTokenStore{
		blacklistFn: func(ctx context.Context, token *domain.BlacklistedToken) error {
			got = token.BlacklistedAt
			return nil
		},
	}

	svc := NewBlacklistService(ts, nil)
	svc.timeFunc = func() time.Time {
		return time.Date(2026, 6, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	}

	require.NoError(t, svc.Revoke(context.Background(), "token"))
	assert.Equal(t, time.UTC, got.Location())
}
