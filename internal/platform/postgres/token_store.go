package postgres

import (
	"context"
	"log/slog"

	"github.com/workdeck/workdeck-api/internal/domain"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/redact"
	"github.com/workdeck/workdeck-api/internal/store"
)

// TokenStore implements store.TokenStore on PostgreSQL.
type TokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTokenStore creates a PostgreSQL implementation of store.TokenStore.
func NewTokenStore(db store.DBTX, logger *slog.Logger) *TokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

var _ store.TokenStore = (*TokenStore)(nil)

// Blacklist implements store.TokenStore.Blacklist.
func (s *TokenStore) Blacklist(ctx context.Context, token *domain.BlacklistedToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO blacklisted_tokens (token, blacklisted_at) VALUES ($1, $2)`
	_, err := s.db.ExecContext(ctx, query, token.Token, token.BlacklistedAt)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to blacklist token",
				slog.String("error", redact.Error(err)))
		}
		return mapped
	}

	log.Info("token blacklisted")
	return nil
}

// IsBlacklisted implements store.TokenStore.IsBlacklisted.
func (s *TokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM blacklisted_tokens WHERE token = $1)`
	if err := s.db.QueryRowContext(ctx, query, token).Scan(&exists); err != nil {
		log.Error("failed to check token denylist",
			slog.String("error", redact.Error(err)))
		return false, err
	}

	return exists, nil
}
