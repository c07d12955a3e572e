package handler

import (
	"errors"
	"net/http"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/logger"
	"github.com/carobar/backend/internal/interfaces/http/dto"
	"github.com/carobar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// caller returns the authenticated caller, answering 401 when there is none
func (h *BaseHandler) caller(c *gin.Context) (refdata.Caller, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return refdata.Caller{}, false
	}
	return caller, true
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InvalidJSON sends a 400 response for a body that could not be decoded
func (h *BaseHandler) InvalidJSON(c *gin.Context) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body")
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts an error into the error envelope. Domain errors keep
// their message and field details; anything else is reported as a generic 500
// and the cause is logged.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		if code == dto.ErrCodeValidation {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
				domainErr.Message,
				getRequestID(c),
				dto.ValidationDetails(domainErr.Details),
			))
			return
		}
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, getRequestID(c)))
		return
	}

	logger.FromContext(c.Request.Context()).Error("unhandled error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}
