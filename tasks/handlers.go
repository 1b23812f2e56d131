package tasks

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/projectman-go/apperror"
	"github.com/user/projectman-go/auth"
)

// Handlers exposes the task operations over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates new task handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the task routes on the given router. The router is
// expected to already carry the JWT middleware.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/project/{projectID}", h.listByProject)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// listByProject godoc
// @Summary List a project's tasks
// @Description Returns the tasks of a project owned by the caller, ordered for display and annotated with urgency.
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param projectID path int true "Project ID"
// @Success 200 {array} tasks.TaskView
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Project absent or not owned"
// @Router /api/tasks/project/{projectID} [get]
func (h *Handlers) listByProject(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}
	projectID, err := strconv.Atoi(chi.URLParam(r, "projectID"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid project id", err))
		return
	}

	raw, err := h.service.ListByProject(r.Context(), callerID, projectID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, ClassifyAndOrder(raw, time.Now()))
}

// create godoc
// @Summary Create a task
// @Description Creates a task in a project owned by the caller.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskBody body tasks.CreateTaskRequest true "Task details"
// @Success 201 {object} tasks.Task
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Project absent or not owned"
// @Router /api/tasks [post]
func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	task, err := h.service.Create(r.Context(), callerID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, task)
}

// update godoc
// @Summary Update a task
// @Description Partially updates a task; absent fields are left unchanged.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param taskBody body tasks.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} tasks.Task
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Task absent or not owned"
// @Router /api/tasks/{id} [put]
func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid task id", err))
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	task, err := h.service.Update(r.Context(), callerID, taskID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, task)
}

// delete godoc
// @Summary Delete a task
// @Tags Tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204 "Deleted"
// @Failure 404 {object} apperror.ErrorResponse "Task absent or not owned"
// @Router /api/tasks/{id} [delete]
func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}
	taskID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid task id", err))
		return
	}

	if err := h.service.Delete(r.Context(), callerID, taskID); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
