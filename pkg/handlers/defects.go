package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/services"
)

// CreateDefectRequest is the JSON payload for POST /api/defects.
type CreateDefectRequest struct {
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	ProjectID             uuid.UUID       `json:"project_id"`
	Priority              models.Priority `json:"priority"`
	AssigneeID            *uuid.UUID      `json:"assignee_id,omitempty"`
	PlannedCompletionDate *time.Time      `json:"planned_completion_date,omitempty"`
}

// ChangeStatusRequest is the JSON payload for PATCH /api/defects/{id}/status.
type ChangeStatusRequest struct {
	Status models.Status `json:"status"`
}

// AddCommentRequest is the JSON payload for POST /api/defects/{id}/comments.
type AddCommentRequest struct {
	Text string `json:"comment_text"`
}

// DefectsHandler handles defect-related HTTP requests.
type DefectsHandler struct {
	defectService services.DefectService
	logger        *zap.Logger
}

// NewDefectsHandler creates a new defects handler.
func NewDefectsHandler(defectService services.DefectService, logger *zap.Logger) *DefectsHandler {
	return &DefectsHandler{
		defectService: defectService,
		logger:        logger,
	}
}

// RegisterRoutes registers the defects handler's routes on the given mux.
// Defect creation is manager-only; everything else requires any
// authenticated role.
func (h *DefectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/defects", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/defects", authMiddleware.RequireRole(models.RoleManager)(h.Create))
	mux.HandleFunc("PATCH /api/defects/{id}/status", authMiddleware.RequireAuth(h.ChangeStatus))
	mux.HandleFunc("GET /api/defects/{id}/comments", authMiddleware.RequireAuth(h.ListComments))
	mux.HandleFunc("POST /api/defects/{id}/comments", authMiddleware.RequireAuth(h.AddComment))
}

// List handles GET /api/defects
// Optional query filters: project_id, status, priority (conjunctive).
func (h *DefectsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.DefectFilter

	if v := r.URL.Query().Get("project_id"); v != "" {
		projectID, err := uuid.Parse(v)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_project_id", "Invalid project ID format"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		filter.ProjectID = &projectID
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := models.Status(v)
		filter.Status = &status
	}
	if v := r.URL.Query().Get("priority"); v != "" {
		priority := models.Priority(v)
		filter.Priority = &priority
	}

	defects, err := h.defectService.List(r.Context(), filter)
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if defects == nil {
		defects = []*models.DefectWithNames{}
	}
	if err := WriteJSON(w, http.StatusOK, defects); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/defects
// Registers a new defect authored by the calling manager.
func (h *DefectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDefectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	defect, err := h.defectService.Create(r.Context(), services.CreateDefectRequest{
		Title:                 req.Title,
		Description:           req.Description,
		ProjectID:             req.ProjectID,
		Priority:              req.Priority,
		AssigneeID:            req.AssigneeID,
		PlannedCompletionDate: req.PlannedCompletionDate,
	})
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, defect); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ChangeStatus handles PATCH /api/defects/{id}/status
// Applies a lifecycle transition and returns the updated defect.
func (h *DefectsHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	defectID, ok := h.pathDefectID(w, r)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	defect, err := h.defectService.ChangeStatus(r.Context(), defectID, req.Status)
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, defect); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListComments handles GET /api/defects/{id}/comments
// Returns comments in chronological order, oldest first.
func (h *DefectsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	defectID, ok := h.pathDefectID(w, r)
	if !ok {
		return
	}

	comments, err := h.defectService.ListComments(r.Context(), defectID)
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if comments == nil {
		comments = []*models.CommentWithAuthor{}
	}
	if err := WriteJSON(w, http.StatusOK, comments); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// AddComment handles POST /api/defects/{id}/comments
func (h *DefectsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	defectID, ok := h.pathDefectID(w, r)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	comment, err := h.defectService.AddComment(r.Context(), defectID, req.Text)
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, comment); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// pathDefectID parses the {id} path segment, writing a 400 on failure.
func (h *DefectsHandler) pathDefectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	defectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_defect_id", "Invalid defect ID format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return defectID, true
}
