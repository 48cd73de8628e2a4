package handler

import (
	"github.com/aptos/backend/internal/application/property"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildingHandler exposes building management endpoints
type BuildingHandler struct {
	BaseHandler
	service *property.BuildingService
}

// NewBuildingHandler creates a BuildingHandler
func NewBuildingHandler(service *property.BuildingService, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers building routes on the API group
func (h *BuildingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	buildings := rg.Group("/buildings")
	{
		buildings.POST("", h.Create)
		buildings.GET("", h.List)
		buildings.GET("/:id", h.Get)
		buildings.PUT("/:id", h.Update)
		buildings.DELETE("/:id", h.Delete)
	}
}

// Create registers a new building
func (h *BuildingHandler) Create(c *gin.Context) {
	var req property.CreateBuildingRequest
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

// List returns buildings matching the filter
func (h *BuildingHandler) List(c *gin.Context) {
	var filter property.BuildingListFilter
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

// Get returns a single building by ID
func (h *BuildingHandler) Get(c *gin.Context) {
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

// Update modifies building details
func (h *BuildingHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req property.UpdateBuildingRequest
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

// Delete removes a building without apartments
func (h *BuildingHandler) Delete(c *gin.Context) {
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
