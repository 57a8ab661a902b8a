// Package authz holds the permission predicates gating every mutating
// operation. The predicates are pure functions over domain values; callers
// load the entities and translate a false result into a forbidden or
// not-found response.
package authz

import (
	"github.com/google/uuid"
	"github.com/workdeck/workdeck-api/internal/domain"
)

// IsWorkspaceAdmin reports whether the user holds the workspace's single
// admin role.
func IsWorkspaceAdmin(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsAdmin(userID)
}

// IsWorkspaceMember reports whether the user belongs to the workspace.
// The admin is always a member.
func IsWorkspaceMember(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsMember(userID)
}

// CanViewWorkspace reports whether the user may read the workspace and the
// entities it owns.
func CanViewWorkspace(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsMember(userID)
}

// CanEditTask reports whether the user may create or update tasks in the
// task's workspace. Any member qualifies.
func CanEditTask(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsMember(userID)
}

// CanDeleteTask reports whether the user may delete tasks in the workspace.
// Admin only.
func CanDeleteTask(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsAdmin(userID)
}

// CanDeleteWorkspace reports whether the user may delete the workspace and
// everything it owns. Admin only.
func CanDeleteWorkspace(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsAdmin(userID)
}

// CanCompleteTask reports whether the user may complete the task: the
// workspace admin always can, the assignee can complete their own task.
func CanCompleteTask(ws *domain.Workspace, task *domain.Task, userID uuid.UUID) bool {
	if ws.IsAdmin(userID) {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == userID
}

// CanAssignTask reports whether the user may assign the task to a member.
// Admin only.
func CanAssignTask(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsAdmin(userID)
}

// CanManageMembers reports whether the user may add or remove workspace
// members. Admin only.
func CanManageMembers(ws *domain.Workspace, userID uuid.UUID) bool {
	return ws.IsAdmin(userID)
}
