package domain

import (
	"errors"
	"time"
)

// ErrEmptyToken is returned when a token string is empty.
var ErrEmptyToken = errors.New("token cannot be empty")

// BlacklistedToken is a revoked token recorded in the persistent denylist.
// Entries are append-only; the denylist is never garbage collected.
type BlacklistedToken struct {
	Token         string    `json:"token"`
	BlacklistedAt time.Time `json:"blacklisted_at"`
}

// NewBlacklistedToken records a token as revoked at the given time.
func NewBlacklistedToken(token string, at time.Time) (*BlacklistedToken, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	return &BlacklistedToken{Token: token, BlacklistedAt: at.UTC()}, nil
}
