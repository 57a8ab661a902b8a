package api

import (
	"log/slog"
	"net/http"

	"github.com/workdeck/workdeck-api/internal/api/shared"
	"github.com/workdeck/workdeck-api/internal/service"
)

// TagHandler handles workspace tag HTTP requests.
type TagHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(taskService *service.TaskService, log *slog.Logger) *TagHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TagHandler")
	}

	return &TagHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "tag_handler")),
	}
}

// List handles GET /workspaces/{id}/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	tags, err := h.taskService.ListTags(r.Context(), userID, workspaceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tags)
}

// Create handles POST /workspaces/{id}/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req CreateTagRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tag, err := h.taskService.CreateTag(r.Context(), userID, workspaceID, req.Name, req.Color)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tag)
}
