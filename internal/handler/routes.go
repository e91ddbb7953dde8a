package handler

import (
	"github.com/labstack/echo/v4"

	"spyglass-proxy-go/internal/rewrite"
)

// RegisterRoutes wires all route handlers onto the Echo instance. The
// proxy route path must stay in lockstep with the rewriter's endpoint,
// so it is taken from there.
func RegisterRoutes(e *echo.Echo, proxy *ProxyHandler, search *SearchHandler, render *RenderHandler, health *HealthHandler) {
	e.GET("/health", health.Health)
	e.GET("/proxy/status", health.Status)

	e.GET(rewrite.Endpoint, proxy.Handle)
	e.GET("/search", search.Handle)
	e.GET("/render", render.Handle)
}
