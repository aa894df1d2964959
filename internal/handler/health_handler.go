package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/health"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and dependency probes.
type HealthHandler struct {
	db       Pinger
	supabase *health.Supabase
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(db Pinger, supabase *health.Supabase) *HealthHandler {
	return &HealthHandler{db: db, supabase: supabase}
}

// Root godoc
// @Summary Liveness
// @Produce plain
// @Success 200 {string} string "API is running"
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "API is running")
}

// Healthz reports ok once the database answers.
func (h *HealthHandler) Healthz(c echo.Context) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, MessageResponse{Message: "database unavailable"})
		}
	}
	return c.String(http.StatusOK, "ok")
}

// Supabase godoc
// @Summary Auth service health
// @Description Proxies the hosted auth service's health endpoint.
// @Tags health
// @Produce json
// @Success 200 {object} health.Result
// @Failure 500 {object} health.Result
// @Router /health/supabase [get]
func (h *HealthHandler) Supabase(c echo.Context) error {
	res := h.supabase.Check(c.Request().Context())
	if !res.OK {
		return c.JSON(http.StatusInternalServerError, res)
	}
	return c.JSON(http.StatusOK, res)
}
