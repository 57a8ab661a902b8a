package store

import (
	"context"

	"github.com/workdeck/workdeck-api/internal/domain"
)

// TokenStore defines the interface for the persistent token denylist.
// The denylist is append-only; entries are never removed.
type TokenStore interface {
	// Blacklist records a revoked token. Returns ErrTokenBlacklisted if
	// the token is already on the denylist.
	Blacklist(ctx context.Context, token *domain.BlacklistedToken) error

	// IsBlacklisted reports whether the token is on the denylist. It is
	// consulted on every authenticated request before any handler runs.
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
