package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buatanmy/discovery-backend/internal/application"
	"github.com/buatanmy/discovery-backend/pkg/response"
)

// respondError maps the operation error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a store failure and reported generically.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrConflict):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidInput):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}
