package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// RespondErrorWithData is RespondError with a payload attached, for failures
// that still produced something the client should see (partial replies,
// violation lists).
func RespondErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError maps the service-layer error taxonomy onto HTTP.
// Provider and validation failures are surfaced verbatim; guessing a
// friendlier message here would hide what actually went wrong.
func HandleServiceError(c *gin.Context, err error) {
	var schemaErr *SchemaValidationError
	var busyErr *ProviderBusyError
	var noModelErr *NoWorkingModelError
	var constraintErr *ConstraintViolationError

	switch {
	case errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrDayNotFound),
		errors.Is(err, ErrPOINotFound),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrChatBusy):
		RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, ErrIntentHasWarnings):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())

	case errors.As(err, &constraintErr):
		RespondError(c, http.StatusUnprocessableEntity, constraintErr.Error())

	case errors.As(err, &schemaErr):
		c.JSON(http.StatusBadGateway, APIResponse{
			Status:  "error",
			Code:    http.StatusBadGateway,
			Message: schemaErr.Error(),
			TraceID: traceID(c),
			Data:    gin.H{"violations": schemaErr.Violations},
		})

	case errors.As(err, &busyErr):
		RespondError(c, http.StatusServiceUnavailable, busyErr.Error())

	case errors.As(err, &noModelErr):
		RespondError(c, http.StatusBadGateway, noModelErr.Error())

	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")

	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
