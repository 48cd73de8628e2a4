package handler

import (
	"time"

	"github.com/aptos/backend/internal/application/tenancy"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusRuleHandler exposes automatic status rule management endpoints
type StatusRuleHandler struct {
	BaseHandler
	service *tenancy.StatusRuleService
}

// NewStatusRuleHandler creates a StatusRuleHandler
func NewStatusRuleHandler(service *tenancy.StatusRuleService, logger *zap.Logger) *StatusRuleHandler {
	return &StatusRuleHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers status rule routes on the API group
func (h *StatusRuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/status-rules")
	{
		rules.POST("", h.Create)
		rules.GET("", h.List)
		rules.GET("/:id", h.Get)
		rules.PUT("/:id", h.Update)
		rules.DELETE("/:id", h.Delete)
		rules.POST("/sweep", h.Sweep)
	}
}

// Create registers a new status rule
func (h *StatusRuleHandler) Create(c *gin.Context) {
	var req tenancy.CreateStatusRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns status rules
func (h *StatusRuleHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	items, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns a single status rule by ID
func (h *StatusRuleHandler) Get(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update modifies a rule's threshold or flags
func (h *StatusRuleHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req tenancy.UpdateStatusRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a status rule
func (h *StatusRuleHandler) Delete(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sweep runs the automatic rules immediately instead of waiting for the
// scheduled run
func (h *StatusRuleHandler) Sweep(c *gin.Context) {
	result, err := h.service.ApplyAutomaticRules(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
