package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Tag validation errors.
var (
	ErrEmptyTagID   = errors.New("tag ID cannot be empty")
	ErrEmptyTagName = errors.New("tag name cannot be empty")
)

// Tag is a workspace-scoped label. Names are unique within a workspace and
// colors are hex codes of the form #RRGGBB.
type Tag struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
}

// NewTag creates a Tag owned by the given workspace.
func NewTag(workspaceID uuid.UUID, name, color string) (*Tag, error) {
	tag := &Tag{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        name,
		Color:       color,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks the Tag's fields.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTagID
	}
	if t.WorkspaceID == uuid.Nil {
		return ErrEmptyWorkspaceID
	}
	if t.Name == "" {
		return ErrEmptyTagName
	}
	if !validHexColor(t.Color) {
		return ErrInvalidColor
	}
	return nil
}

// UserTag is the personal analog of Tag, owned by a single user. Names are
// unique per owner.
type UserTag struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"-"`
	Name   string    `json:"name"`
	Color  string    `json:"color"`
}

// NewUserTag creates a UserTag owned by the given user.
func NewUserTag(userID uuid.UUID, name, color string) (*UserTag, error) {
	tag := &UserTag{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
		Color:  color,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks the UserTag's fields.
func (t *UserTag) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTagID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if t.Name == "" {
		return ErrEmptyTagName
	}
	if !validHexColor(t.Color) {
		return ErrInvalidColor
	}
	return nil
}

// validHexColor reports whether s is a #RRGGBB hex color code.
func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
