package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workdeck/workdeck-api/internal/domain"
)

func TestNewTag(t *testing.T) {
	t.Parallel()

	wsID := uuid.New()

	tag, err := domain.NewTag(wsID, "urgent", "#FF0000")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tag.ID)
	assert.Equal(t, wsID, tag.WorkspaceID)
	assert.Equal(t, "urgent", tag.Name)

	tests := []struct {
		name    string
		tagName string
		color   string
		wantErr error
	}{
		{name: "empty name", tagName: "", color: "#FF0000", wantErr: domain.ErrEmptyTagName},
		{name: "named color", tagName: "urgent", color: "red", wantErr: domain.ErrInvalidColor},
		{name: "missing hash", tagName: "urgent", color: "FF0000", wantErr: domain.ErrInvalidColor},
		{name: "short hex", tagName: "urgent", color: "#FFF", wantErr: domain.ErrInvalidColor},
		{name: "non-hex digit", tagName: "urgent", color: "#FF00GG", wantErr: domain.ErrInvalidColor},
		{name: "empty color", tagName: "urgent", color: "", wantErr: domain.ErrInvalidColor},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewTag(wsID, tt.tagName, tt.color)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTagAcceptsMixedCaseHex(t *testing.T) {
	t.Parallel()

	for _, color := range []string{"#abcdef", "#ABCDEF", "#1a2B3c"} {
		_, err := domain.NewTag(uuid.New(), "urgent", color)
		assert.NoError(t, err, "color %q", color)
	}
}

func TestNewUserTag(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	tag, err := domain.NewUserTag(ownerID, "errands", "#00FF00")
	require.NoError(t, err)
	assert.Equal(t, ownerID, tag.UserID)

	_, err = domain.NewUserTag(uuid.Nil, "errands", "#00FF00")
	assert.ErrorIs(t, err, domain.ErrEmptyUserID)

	_, err = domain.NewUserTag(ownerID, "errands", "green")
	assert.ErrorIs(t, err, domain.ErrInvalidColor)
}
