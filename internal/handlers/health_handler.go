package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the health check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	healthy := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "down"
			healthy = false
			continue
		}
		checks[name] = "up"
	}

	status, message := "ok", "Spin & Win API is running"
	if !healthy {
		status, message = "degraded", "One or more dependencies are unavailable"
	}

	body := gin.H{"status": status, "message": message}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	c.JSON(healthStatus(healthy), body)
}
