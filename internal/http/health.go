package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sallahboussettah/readwise/internal/storage"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	store   *storage.Store
	version string
}

func NewHealthController(store *storage.Store, version string) *HealthController {
	return &HealthController{
		store:   store,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			checks["storage"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["storage"] = "ok"
		}
	} else {
		checks["storage"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
