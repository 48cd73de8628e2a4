package handler

import (
	"github.com/aptos/backend/internal/application/tenancy"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/aptos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TenantHandler exposes tenant registration, lifecycle, and audit endpoints
type TenantHandler struct {
	BaseHandler
	service *tenancy.TenantService
}

// NewTenantHandler creates a TenantHandler
func NewTenantHandler(service *tenancy.TenantService, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers tenant routes on the API group
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Register)
		tenants.GET("", h.List)
		tenants.GET("/by-document/:document", h.GetByDocument)
		tenants.GET("/:id", h.Get)
		tenants.PUT("/:id", h.Update)
		tenants.POST("/:id/transition", h.Transition)
		tenants.GET("/:id/history", h.History)
	}
}

// Register creates a new tenant from a CPF or CNPJ document
func (h *TenantHandler) Register(c *gin.Context) {
	var req tenancy.RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns tenants matching the filter
func (h *TenantHandler) List(c *gin.Context) {
	var filter tenancy.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, dto.NewMeta(filter.Page, filter.PageSize, total))
}

// Get returns a single tenant by ID
func (h *TenantHandler) Get(c *gin.Context) {
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

// GetByDocument looks a tenant up by CPF or CNPJ, with or without
// formatting punctuation
func (h *TenantHandler) GetByDocument(c *gin.Context) {
	document := c.Param("document")

	resp, err := h.service.GetByDocument(c.Request.Context(), document)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update modifies tenant contact details. Kind and document are immutable.
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req tenancy.UpdateTenantRequest
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

// Transition moves a tenant to a new status. Transitioning to BLOCKED
// finalizes the tenant's active leases.
func (h *TenantHandler) Transition(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req tenancy.TransitionTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Actor = middleware.GetActingUser(c)

	resp, err := h.service.Transition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History returns the tenant's status transition log, newest first
func (h *TenantHandler) History(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	items, err := h.service.History(c.Request.Context(), id, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
