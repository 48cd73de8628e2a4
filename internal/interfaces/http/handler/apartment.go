package handler

import (
	"github.com/aptos/backend/internal/application/property"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApartmentHandler exposes apartment management endpoints
type ApartmentHandler struct {
	BaseHandler
	service *property.ApartmentService
}

// NewApartmentHandler creates an ApartmentHandler
func NewApartmentHandler(service *property.ApartmentService, logger *zap.Logger) *ApartmentHandler {
	return &ApartmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers apartment routes on the API group
func (h *ApartmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	apartments := rg.Group("/apartments")
	{
		apartments.POST("", h.Create)
		apartments.GET("", h.List)
		apartments.GET("/available", h.ListAvailable)
		apartments.GET("/:id", h.Get)
		apartments.PUT("/:id", h.Update)
		apartments.DELETE("/:id", h.Delete)
	}
}

// Create registers a new apartment in a building
func (h *ApartmentHandler) Create(c *gin.Context) {
	var req property.CreateApartmentRequest
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

// List returns apartments matching the filter
func (h *ApartmentHandler) List(c *gin.Context) {
	var filter property.ApartmentListFilter
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

// ListAvailable returns apartments currently free of active leases
func (h *ApartmentHandler) ListAvailable(c *gin.Context) {
	var filter property.ApartmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	items, err := h.service.ListAvailable(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Get returns a single apartment by ID
func (h *ApartmentHandler) Get(c *gin.Context) {
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

// Update modifies apartment details. Availability is derived from leases
// and cannot be set here.
func (h *ApartmentHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req property.UpdateApartmentRequest
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

// Delete removes an apartment without active leases
func (h *ApartmentHandler) Delete(c *gin.Context) {
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
