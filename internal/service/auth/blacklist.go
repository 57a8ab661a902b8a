package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/store"
)

// BlacklistService revokes tokens by recording them on a persistent
// denylist. Revocation is permanent; entries are never removed.
type BlacklistService struct {
	tokenStore store.TokenStore
	timeFunc   func() time.Time
	logger     *slog.Logger
}

// NewBlacklistService creates a BlacklistService backed by the given store.
func NewBlacklistService(tokenStore store.TokenStore, log *slog.Logger) *BlacklistService {
	if tokenStore == nil {
		panic("tokenStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &BlacklistService{
		tokenStore: tokenStore,
		timeFunc:   time.Now,
		logger:     log.With(slog.String("component", "blacklist_service")),
	}
}

// Revoke places the access and refresh tokens of a session on the denylist.
// The denylist is unique per token, and a duplicate insert is an error:
// revoking an already revoked token fails rather than silently succeeding.
func (s *BlacklistService) Revoke(ctx context.Context, tokens ...string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc().UTC()

	for _, token := range tokens {
		entry, err := domain.NewBlacklistedToken(token, now)
		if err != nil {
			return fmt.Errorf("invalid token for revocation: %w", err)
		}

		if err := s.tokenStore.Blacklist(ctx, entry); err != nil {
			if store.IsDuplicateError(err) {
				return fmt.Errorf("token already revoked: %w", err)
			}
			return fmt.Errorf("failed to revoke token: %w", err)
		}
	}

	log.Info("session tokens revoked", slog.Int("count", len(tokens)))
	return nil
}

// IsRevoked reports whether the token has been revoked. Consulted on every
// authenticated request.
func (s *BlacklistService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.tokenStore.IsBlacklisted(ctx, token)
}
