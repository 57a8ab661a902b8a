package mocks

import (
	"context"

	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/store"
)

// MockTokenStore implements store.TokenStore for testing.
type MockTokenStore struct {
	BlacklistFn     func(ctx context.Context, token *domain.BlacklistedToken) error
	IsBlacklistedFn func(ctx context.Context, token string) (bool, error)
}

var _ store.TokenStore = (*MockTokenStore)(nil)

// Blacklist implements the TokenStore interface.
func (m *MockTokenStore) Blacklist(ctx context.Context, token *domain.BlacklistedToken) error {
	if m.BlacklistFn != nil {
		return m.BlacklistFn(ctx, token)
	}
	return nil
}

// IsBlacklisted implements the TokenStore interface.
func (m *MockTokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	if m.IsBlacklistedFn != nil {
		return m.IsBlacklistedFn(ctx, token)
	}
	return false, nil
}
