package api

import (
	"log/slog"
	"net/http"

	"github.com/workdeck/workdeck-api/internal/api/shared"
	"github.com/workdeck/workdeck-api/internal/platform/logger"
	"github.com/workdeck/workdeck-api/internal/service"
	"github.com/workdeck/workdeck-api/internal/store"
)

// WorkspaceHandler handles workspace and membership HTTP requests.
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService *service.WorkspaceService, log *slog.Logger) *WorkspaceHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WorkspaceHandler")
	}

	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           log.With(slog.String("component", "workspace_handler")),
	}
}

// List handles GET /workspaces. Supports admin, search and ordering
// query parameters.
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	q := r.URL.Query()
	opts := store.ListWorkspacesOptions{
		AdminUsername: q.Get("admin"),
		Search:        q.Get("search"),
		OrderBy:       q.Get("ordering"),
	}

	workspaces, err := h.workspaceService.List(r.Context(), userID, opts)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, workspaces)
}

// Create handles POST /workspaces. The creator becomes the admin.
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateWorkspaceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ws, err := h.workspaceService.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("workspace created",
		slog.String("workspace_id", ws.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, ws)
}

// Get handles GET /workspaces/{id}.
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	ws, err := h.workspaceService.Get(r.Context(), userID, workspaceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ws)
}

// Delete handles DELETE /workspaces/{id}. Admin only; tags, tasks and
// memberships cascade.
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(r.Context(), userID, workspaceID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "workspace deleted"})
}

// AddUser handles POST /workspaces/{id}/add-user. Admin only.
func (h *WorkspaceHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req AddUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ws, err := h.workspaceService.AddMember(r.Context(), userID, workspaceID, req.Username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ws)
}

// RemoveUser handles POST /workspaces/{id}/remove-user. Admin only; the
// admin itself can never be removed.
func (h *WorkspaceHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req AddUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.workspaceService.RemoveMember(r.Context(), userID, workspaceID, req.Username); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "member removed"})
}
