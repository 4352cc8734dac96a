package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Probe checks one backend dependency.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
// Probe errors are logged, never returned to the caller.
type HealthHandler struct {
	probes []Probe
	log    zerolog.Logger
}

func NewHealthHandler(log zerolog.Logger, probes ...Probe) *HealthHandler {
	return &HealthHandler{probes: probes, log: log}
}

type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness handles GET /health. Returns 200 as long as the process serves.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readiness handles GET /health/ready. Every configured backend must answer.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.probes))
	healthy := true

	for _, p := range h.probes {
		if err := p.Check(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", p.Name).Msg("readiness probe failed")
			deps[p.Name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[p.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
