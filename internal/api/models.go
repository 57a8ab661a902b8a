package api

import (
	"time"

	"github.com/workdeck/workdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username  string `json:"username"   validate:"required,min=1,max=150"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name"  validate:"max=150"`
}

// TokenRequest defines the payload for the token-pair endpoint.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public profile of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the successful response of the token-pair endpoint:
// both tokens plus the authenticated user's profile.
type TokenResponse struct {
	AccessToken  string       `json:"access"`
	RefreshToken string       `json:"refresh"`
	User         UserResponse `json:"user"`
}

// LogoutRequest defines the payload for the logout endpoint. The access
// token comes from the Authorization header, the refresh token from here.
type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// CreateWorkspaceRequest defines the payload for workspace creation.
type CreateWorkspaceRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// AddUserRequest names a user for membership or assignment operations.
type AddUserRequest struct {
	Username string `json:"username" validate:"required"`
}

// CreateTagRequest defines the payload for tag creation, workspace or
// personal.
type CreateTagRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"required"`
}

// CreateTaskRequest defines the payload for task creation, workspace or
// personal.
type CreateTaskRequest struct {
	Title   string     `json:"title"    validate:"required,min=1,max=255"`
	Status  string     `json:"status"   validate:"omitempty,oneof=pending in_progress completed"`
	FinalAt *time.Time `json:"final_at"`
	TagIDs  []string   `json:"tags"     validate:"omitempty,dive,uuid"`
}

// UpdateTaskRequest defines the payload for partial task updates. Nil
// fields are left unchanged; a non-nil empty tag list clears the tags.
type UpdateTaskRequest struct {
	Title   *string    `json:"title"    validate:"omitempty,min=1,max=255"`
	Status  *string    `json:"status"   validate:"omitempty,oneof=pending in_progress completed"`
	FinalAt *time.Time `json:"final_at"`
	TagIDs  *[]string  `json:"tags"     validate:"omitempty,dive,uuid"`
}

// TaskResponse is the wire form of a workspace task. AssignedTo carries
// the assignee's user ID, or null when the task is unassigned.
type TaskResponse struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	FinalAt    *time.Time   `json:"final_at"`
	AssignedTo *string      `json:"assigned_to"`
	Tags       []domain.Tag `json:"tags"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:        task.ID.String(),
		Title:     task.Title,
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt,
		FinalAt:   task.FinalAt,
		Tags:      task.Tags,
	}
	if resp.Tags == nil {
		resp.Tags = []domain.Tag{}
	}
	if task.AssignedTo != nil {
		id := task.AssignedTo.String()
		resp.AssignedTo = &id
	}
	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
		CreatedAt: user.CreatedAt,
	}
}
