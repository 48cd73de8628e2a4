package handler

import (
	"github.com/aptos/backend/internal/application/leasing"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/aptos/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LeaseHandler exposes lease lifecycle endpoints
type LeaseHandler struct {
	BaseHandler
	service *leasing.LeaseService
}

// NewLeaseHandler creates a LeaseHandler
func NewLeaseHandler(service *leasing.LeaseService, logger *zap.Logger) *LeaseHandler {
	return &LeaseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers lease routes on the API group
func (h *LeaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leases := rg.Group("/leases")
	{
		leases.POST("", h.Create)
		leases.GET("", h.List)
		leases.GET("/:id", h.Get)
		leases.PUT("/:id", h.Update)
		leases.POST("/:id/finalize", h.Finalize)
		leases.POST("/:id/reactivate", h.Reactivate)
		leases.GET("/:id/history", h.History)
		leases.DELETE("/:id", h.Delete)
	}
}

// Create opens a lease binding a tenant to an apartment. Rejected when the
// apartment already has a lease over the requested period.
func (h *LeaseHandler) Create(c *gin.Context) {
	var req leasing.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Actor = middleware.GetActingUser(c)

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns leases matching the filter
func (h *LeaseHandler) List(c *gin.Context) {
	var filter leasing.LeaseListFilter
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

// Get returns a single lease by ID
func (h *LeaseHandler) Get(c *gin.Context) {
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

// Update modifies a lease's period, apartment, or terms. Period and
// apartment changes are re-validated against existing leases.
func (h *LeaseHandler) Update(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	var req leasing.UpdateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	req.Actor = middleware.GetActingUser(c)

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Finalize closes a lease, releasing its apartment. Defaults to today when
// no end date is given.
func (h *LeaseHandler) Finalize(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	// body is optional; an absent end date means today
	var req leasing.FinalizeLeaseRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.HandleBindingError(c, err)
			return
		}
	}
	req.Actor = middleware.GetActingUser(c)

	resp, err := h.service.Finalize(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reactivate reopens a finalized lease, subject to occupancy validation
func (h *LeaseHandler) Reactivate(c *gin.Context) {
	id, ok := h.BindID(c)
	if !ok {
		return
	}

	resp, err := h.service.Reactivate(c.Request.Context(), id, middleware.GetActingUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// History returns the lease's lifecycle log, newest first
func (h *LeaseHandler) History(c *gin.Context) {
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

// Delete removes a lease and its history. Intended for records created in
// error; finalizing is the normal way to end a lease.
func (h *LeaseHandler) Delete(c *gin.Context) {
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
