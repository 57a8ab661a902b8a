package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/workdeck/workdeck-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil error",
			err:  nil,
			want: nil,
		},
		{
			name: "duplicate username",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			want: store.ErrUsernameExists,
		},
		{
			name: "duplicate email",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			want: store.ErrEmailExists,
		},
		{
			name: "duplicate workspace title",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "workspaces_title_key"},
			want: store.ErrWorkspaceTitleExists,
		},
		{
			name: "duplicate membership",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "memberships_workspace_user"},
			want: store.ErrMembershipExists,
		},
		{
			name: "duplicate workspace tag name",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "tags_workspace_id_name_key"},
			want: store.ErrTagNameExists,
		},
		{
			name: "duplicate personal tag name",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "user_tags_user_id_name_key"},
			want: store.ErrTagNameExists,
		},
		{
			name: "duplicate task title",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "tasks_workspace_id_title_key"},
			want: store.ErrTaskTitleExists,
		},
		{
			name: "duplicate personal task title",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "user_tasks_user_id_title_key"},
			want: store.ErrTaskTitleExists,
		},
		{
			name: "already blacklisted token",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "blacklisted_tokens_token_key"},
			want: store.ErrTokenBlacklisted,
		},
		{
			name: "unique violation with unknown constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "something_else"},
			want: store.ErrDuplicate,
		},
		{
			name: "unrelated pg error passes through",
			err:  &pgconn.PgError{Code: "42P01"},
			want: nil, // checked separately below
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.err)
			if tc.want != nil {
				assert.ErrorIs(t, got, tc.want)
				return
			}
			if tc.err == nil {
				assert.NoError(t, got)
				return
			}
			// Errors outside the mapped classes come back unchanged.
			assert.Equal(t, tc.err, got)
		})
	}
}

func TestMapErrorWrapsOriginal(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	got := MapError(pgErr)

	assert.ErrorIs(t, got, store.ErrEmailExists)
	assert.ErrorIs(t, got, store.ErrDuplicate)
	assert.Contains(t, got.Error(), "23505", "mapped error should keep the driver detail")
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

var _ sql.Result = fakeResult{}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, store.ErrTaskNotFound), store.ErrTaskNotFound)

	boom := errors.New("driver broke")
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{err: boom}, store.ErrTaskNotFound), boom)
}
