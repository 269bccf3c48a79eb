package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/robolab-go/pkg/response"
)

// Pinger reports whether the data store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Healthz godoc
// @Summary Liveness and store reachability
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	if h.ping == nil {
		c.JSON(http.StatusOK, response.HealthResponse{Status: "ok", Store: "unchecked"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.HealthResponse{Status: "degraded", Store: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok", Store: "ok"})
}
