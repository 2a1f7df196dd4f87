package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/defectdesk/defectdesk-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceErrorResponse maps a typed service error to its transport-level
// response. Unexpected errors are logged and answered with a generic 500
// so no internal detail leaks to the caller.
func ServiceErrorResponse(w http.ResponseWriter, logger *zap.Logger, err error) {
	var ve *apperrors.ValidationError

	var writeErr error
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		writeErr = ErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
	case errors.Is(err, apperrors.ErrNotFound):
		writeErr = ErrorResponse(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, apperrors.ErrForbidden):
		writeErr = ErrorResponse(w, http.StatusForbidden, "forbidden", "Insufficient role for this operation")
	case errors.Is(err, apperrors.ErrInvalidStatus):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_status", "Status is not one of the allowed values")
	case errors.Is(err, apperrors.ErrInvalidPriority):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_priority", "Priority is not one of the allowed values")
	case errors.Is(err, apperrors.ErrInvalidReference):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "invalid_reference", "Referenced entity does not exist")
	case errors.As(err, &ve):
		writeErr = ErrorResponse(w, http.StatusBadRequest, "validation_error", ve.Error())
	default:
		logger.Error("Unexpected service error", zap.Error(err))
		writeErr = ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}

	if writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}
