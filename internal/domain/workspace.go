package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Workspace validation errors.
var (
	ErrEmptyWorkspaceID    = errors.New("workspace ID cannot be empty")
	ErrEmptyWorkspaceTitle = errors.New("workspace title cannot be empty")
	ErrNoWorkspaceAdmin    = errors.New("workspace must have exactly one admin")
)

// Role is the membership role of a user within a workspace. The admin is a
// distinguished role value rather than a separate field, so the invariant
// "admin is always a member" holds by construction.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is a user's membership in a workspace. Username is denormalized
// from the users table for display and filtering.
type Member struct {
	UserID   uuid.UUID `json:"-"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// Workspace is a named collaboration scope owning tasks and tags. It has
// exactly one admin member and any number of ordinary members.
type Workspace struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Members     []Member  `json:"members"`
}

// NewWorkspace creates a Workspace with the creator as its admin.
func NewWorkspace(title, description string, adminID uuid.UUID, adminUsername string) (*Workspace, error) {
	ws := &Workspace{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Members: []Member{
			{UserID: adminID, Username: adminUsername, Role: RoleAdmin},
		},
	}

	if err := ws.Validate(); err != nil {
		return nil, err
	}

	return ws, nil
}

// Validate checks structural invariants, including the single-admin rule.
func (w *Workspace) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWorkspaceID
	}
	if w.Title == "" {
		return ErrEmptyWorkspaceTitle
	}

	admins := 0
	for _, m := range w.Members {
		if m.Role == RoleAdmin {
			admins++
		}
	}
	if admins != 1 {
		return ErrNoWorkspaceAdmin
	}

	return nil
}

// Admin returns the admin member of the workspace.
func (w *Workspace) Admin() (Member, bool) {
	for _, m := range w.Members {
		if m.Role == RoleAdmin {
			return m, true
		}
	}
	return Member{}, false
}

// IsAdmin reports whether the given user is the workspace admin.
func (w *Workspace) IsAdmin(userID uuid.UUID) bool {
	admin, ok := w.Admin()
	return ok && admin.UserID == userID
}

// IsMember reports whether the given user belongs to the workspace in any
// role. The admin is always a member.
func (w *Workspace) IsMember(userID uuid.UUID) bool {
	for _, m := range w.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberByUsername looks up a member by username.
func (w *Workspace) MemberByUsername(username string) (Member, bool) {
	for _, m := range w.Members {
		if m.Username == username {
			return m, true
		}
	}
	return Member{}, false
}
