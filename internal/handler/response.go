package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rides/internal/geocode"
	"rides/internal/repository"
	"rides/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Message: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
// Each error kind has exactly one status, so clients can react deterministically;
// 503 is the only retryable outcome.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrEmptyAddress):
		return http.StatusBadRequest

	case errors.Is(err, repository.ErrUnavailable),
		errors.Is(err, geocode.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
