package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workdeck/workdeck-api/internal/store"
)

// PostgreSQL error codes.
const (
	// uniqueViolationCode is the error code for unique constraint violations.
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the error code for foreign key violations.
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the error code for check constraint violations.
	checkViolationCode = "23514"
)

// uniqueConstraintErrors maps unique constraint names from the migrations
// to entity-specific duplicate sentinels.
var uniqueConstraintErrors = map[string]error{
	"users_username_key":          store.ErrUsernameExists,
	"users_email_key":             store.ErrEmailExists,
	"workspaces_title_key":        store.ErrWorkspaceTitleExists,
	"memberships_workspace_user":  store.ErrMembershipExists,
	"tags_workspace_id_name_key":  store.ErrTagNameExists,
	"user_tags_user_id_name_key":  store.ErrTagNameExists,
	"tasks_workspace_id_title_key": store.ErrTaskTitleExists,
	"user_tasks_user_id_title_key": store.ErrTaskTitleExists,
	"blacklisted_tokens_token_key": store.ErrTokenBlacklisted,
}

// MapError maps a database error to the store error taxonomy, wrapping the
// original error to preserve context. Every store operation routes its
// errors through here so callers only match store sentinels.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			if sentinel, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return fmt.Errorf("%w: %v", sentinel, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err)
		}
	}

	return err
}

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the error is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected returns notFound when the operation affected no rows.
// Used for UPDATE and DELETE, where zero rows means the target is absent.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
