package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"spyglass-proxy-go/internal/service"
)

// RenderHandler serves the headless-render alternative to the proxy path.
type RenderHandler struct {
	service *service.RenderService
	logger  *slog.Logger
}

// NewRenderHandler creates a RenderHandler.
func NewRenderHandler(svc *service.RenderService, logger *slog.Logger) *RenderHandler {
	return &RenderHandler{
		service: svc,
		logger:  logger.With("component", "render_handler"),
	}
}

// Handle answers GET /render?url=... with fully-executed, sanitized,
// rewritten HTML.
func (h *RenderHandler) Handle(c echo.Context) error {
	page, err := h.service.Render(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		return h.mapError(c, err)
	}
	return respondPage(c, page)
}

func (h *RenderHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("render error",
		"err", err,
		"url", c.QueryParam("url"),
	)

	switch {
	case errors.Is(err, service.ErrRenderDisabled):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "rendering is not configured",
		})
	case errors.Is(err, service.ErrInvalidTarget):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "missing or invalid url parameter",
		})
	case errors.Is(err, service.ErrHostNotAllowed):
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "target host is not allowed",
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "rendering timed out",
		})
	}
	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "rendering failed",
	})
}
