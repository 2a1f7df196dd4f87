package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/services"
)

// ProjectsHandler handles project-related HTTP requests.
type ProjectsHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/projects/stats", authMiddleware.RequireAuth(h.Stats))
}

// List handles GET /api/projects
// Returns active projects annotated with aggregate defect counts.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListActive(r.Context())
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if projects == nil {
		projects = []*models.ProjectWithCounts{}
	}
	if err := WriteJSON(w, http.StatusOK, projects); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Stats handles GET /api/projects/stats
// Returns global defect counters across all projects.
func (h *ProjectsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.projectService.Stats(r.Context())
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, stats); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
