package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"spyglass-proxy-go/internal/allowlist"
	"spyglass-proxy-go/internal/config"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	cfg     *config.Config
	hosts   *allowlist.Allowlist
	version Version
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, hosts *allowlist.Allowlist, v Version) *HealthHandler {
	return &HealthHandler{cfg: cfg, hosts: hosts, version: v}
}

// Health returns a simple OK response for liveness probes.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{
		"ok": true,
	})
}

// Status returns proxy status information.
func (h *HealthHandler) Status(c echo.Context) error {
	mode := fmt.Sprintf("%d hosts", h.hosts.Len())
	if h.hosts.Permissive() {
		mode = "permissive"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        string(h.version),
		"allowlist":      mode,
		"search_enabled": h.cfg.Search.BaseURL != "",
		"render_enabled": h.cfg.Render.BaseURL != "",
	})
}
