package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/fishiphedia/fishiphedia-backend/internal/apperrors"
)

// respondError translates service errors into HTTP statuses. Anything not
// covered by a sentinel is a 500.
func respondError(c *gin.Context, err error) {
  status := http.StatusInternalServerError
  switch {
  case errors.Is(err, apperrors.ErrNotFound):
    status = http.StatusNotFound
  case errors.Is(err, apperrors.ErrAccessDenied):
    status = http.StatusForbidden
  case errors.Is(err, apperrors.ErrConflict):
    status = http.StatusConflict
  case errors.Is(err, apperrors.ErrInvalidArgument):
    status = http.StatusBadRequest
  case errors.Is(err, apperrors.ErrClassifierUnavailable):
    status = http.StatusServiceUnavailable
  case errors.Is(err, apperrors.ErrArchiveStorage):
    status = http.StatusInternalServerError
  }
  c.JSON(status, gin.H{"error": err.Error()})
}
