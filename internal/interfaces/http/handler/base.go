package handler

import (
	"errors"
	"net/http"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/aptos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides response helpers shared by all handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a BaseHandler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

// Success writes a 200 with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

// Created writes a 201 with the standard envelope
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError maps domain errors to HTTP responses. Unknown errors are
// logged and surfaced as an opaque 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status >= http.StatusInternalServerError {
			h.logger.Error("unmapped domain error",
				zap.String("request_id", requestID),
				zap.String("code", domainErr.Code),
				zap.Error(err))
		}
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.CodeInternal, "An internal error occurred", requestID))
}

// HandleBindingError maps request binding failures to a 400, with
// per-field details when the validator produced them
func (h *BaseHandler) HandleBindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		middleware.HandleValidationError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.CodeInvalidInput, err.Error(), middleware.GetRequestID(c)))
}

// BindID binds and parses the :id path parameter
func (h *BaseHandler) BindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.HandleBindingError(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.HandleBindingError(c, err)
		return uuid.Nil, false
	}
	return id, true
}
