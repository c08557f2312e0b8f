package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler answers liveness and readiness checks
type HealthHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	database  Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string, database Pinger) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
		database:  database,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health returns 200 when the database answers a ping and 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Database:  "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	status := http.StatusOK
	if h.database != nil {
		if err := h.database.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = err.Error()
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
