package handler

import (
	"errors"
	"strconv"

	"github.com/aptos/backend/internal/application/report"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidWindow = errors.New("window_days must be between 1 and 365")

// ReportHandler exposes dashboard metrics and operational reports
type ReportHandler struct {
	BaseHandler
	service *report.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(service *report.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/tenants", h.TenantMetrics)
		reports.GET("/occupancy", h.OccupancyMetrics)
		reports.GET("/delinquency", h.Delinquency)
		reports.GET("/status-activity", h.StatusActivity)
	}
}

// TenantMetrics returns tenant counts by status and kind
func (h *ReportHandler) TenantMetrics(c *gin.Context) {
	metrics, err := h.service.TenantMetrics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, metrics)
}

// OccupancyMetrics returns apartment occupancy counts and rate
func (h *ReportHandler) OccupancyMetrics(c *gin.Context) {
	metrics, err := h.service.OccupancyMetrics(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, metrics)
}

// Delinquency lists delinquent tenants and their active lease counts
func (h *ReportHandler) Delinquency(c *gin.Context) {
	result, err := h.service.DelinquencyReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// StatusActivity summarizes status transitions over a window, 30 days by
// default
func (h *ReportHandler) StatusActivity(c *gin.Context) {
	windowDays := 30
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			h.HandleBindingError(c, errInvalidWindow)
			return
		}
		windowDays = parsed
	}

	result, err := h.service.StatusActivityReport(c.Request.Context(), windowDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
