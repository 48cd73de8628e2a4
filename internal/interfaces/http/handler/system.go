package handler

import (
	"net/http"
	"time"

	"github.com/aptos/backend/internal/infrastructure/persistence"
	"github.com/aptos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler exposes health and operational endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	appName   string
	version   string
	startedAt time.Time
}

// NewSystemHandler creates a SystemHandler
func NewSystemHandler(db *persistence.Database, appName, version string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		db:          db,
		appName:     appName,
		version:     version,
		startedAt:   time.Now(),
	}
}

// RegisterRoutes registers system routes on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/system/stats", h.Stats)
}

// HealthResponse reports service liveness and database reachability
type HealthResponse struct {
	Status   string `json:"status"`
	App      string `json:"app"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// Health reports liveness. Returns 503 when the database is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		App:      h.appName,
		Version:  h.version,
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
		Database: "up",
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
		return
	}
	h.Success(c, resp)
}

// Stats reports database connection pool statistics
func (h *SystemHandler) Stats(c *gin.Context) {
	stats, err := h.db.Stats()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
