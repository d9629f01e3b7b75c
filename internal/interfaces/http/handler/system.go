package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/revenda/backend/internal/infrastructure/persistence"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	dbStatus := "up"
	if err := h.db.Ping(); err != nil {
		dbStatus = "down"
	}

	status := "ok"
	if dbStatus != "up" {
		status = "degraded"
	}

	h.Success(c, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
