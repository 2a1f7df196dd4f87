package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/auth"
	"github.com/defectdesk/defectdesk-engine/pkg/models"
	"github.com/defectdesk/defectdesk-engine/pkg/services"
)

// UsersHandler handles user listing HTTP requests.
type UsersHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService services.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/users", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("GET /api/users/engineers", authMiddleware.RequireAuth(h.ListEngineers))
}

// List handles GET /api/users
// Returns all active users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListActive(r.Context())
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if users == nil {
		users = []*models.User{}
	}
	if err := WriteJSON(w, http.StatusOK, users); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListEngineers handles GET /api/users/engineers
// Returns active engineers for the assignee picker.
func (h *UsersHandler) ListEngineers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListEngineers(r.Context())
	if err != nil {
		ServiceErrorResponse(w, h.logger, err)
		return
	}

	if users == nil {
		users = []*models.User{}
	}
	if err := WriteJSON(w, http.StatusOK, users); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
