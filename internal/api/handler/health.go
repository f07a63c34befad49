package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	sites   int
	ledger  bool
	started time.Time
}

// NewHealthHandler creates a new health handler.
// Parameters:
//   - sites: catalog size.
//   - ledger: whether the run ledger is configured.
//
// Returns:
//   - *HealthHandler: initialized handler.
func NewHealthHandler(sites int, ledger bool) *HealthHandler {
	return &HealthHandler{sites: sites, ledger: ledger, started: time.Now()}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"sites":          h.sites,
		"ledger":         h.ledger,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
