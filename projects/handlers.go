package projects

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/projectman-go/apperror"
	"github.com/user/projectman-go/auth"
)

// Handlers exposes the project operations over HTTP.
type Handlers struct {
	service *Service
}

// NewHandlers creates new project handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the project routes on the given router. The router
// is expected to already carry the JWT middleware.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// list godoc
// @Summary List the caller's projects
// @Description Returns every project owned by the caller, each with its tasks and a status derived from them.
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {array} projects.ProjectView
// @Failure 401 {object} apperror.ErrorResponse
// @Router /api/projects [get]
func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}

	views, err := h.service.List(r.Context(), callerID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, views)
}

// create godoc
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectBody body projects.CreateProjectRequest true "Project details"
// @Success 201 {object} projects.ProjectView
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/projects [post]
func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	project, err := h.service.Create(r.Context(), callerID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, project)
}

// get godoc
// @Summary Get a project
// @Description Returns a project owned by the caller, with its tasks and derived status.
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} projects.ProjectView
// @Failure 404 {object} apperror.ErrorResponse "Project absent or not owned"
// @Router /api/projects/{id} [get]
func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}
	projectID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid project id", err))
		return
	}

	project, err := h.service.Get(r.Context(), callerID, projectID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, project)
}

// update godoc
// @Summary Update a project
// @Description Partially updates a project; absent fields are left unchanged.
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param projectBody body projects.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} projects.Project
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Project absent or not owned"
// @Router /api/projects/{id} [put]
func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}
	projectID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid project id", err))
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	project, err := h.service.Update(r.Context(), callerID, projectID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, project)
}

// delete godoc
// @Summary Delete a project
// @Description Deletes a project and, through the store cascade, all of its tasks.
// @Tags Projects
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204 "Deleted"
// @Failure 404 {object} apperror.ErrorResponse "Project absent or not owned"
// @Router /api/projects/{id} [delete]
func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user ID not found in context", nil))
		return
	}
	projectID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid project id", err))
		return
	}

	if err := h.service.Delete(r.Context(), callerID, projectID); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
