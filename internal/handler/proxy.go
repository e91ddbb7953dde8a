package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"spyglass-proxy-go/internal/model"
	"spyglass-proxy-go/internal/service"
)

// ProxyHandler serves the proxy endpoint the rewritten links point at.
type ProxyHandler struct {
	service *service.ProxyService
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Handle fetches the target named by the url query parameter and
// responds with the rewritten HTML or the verbatim upstream bytes.
func (h *ProxyHandler) Handle(c echo.Context) error {
	page, err := h.service.Fetch(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		return h.mapError(c, err)
	}
	return respondPage(c, page)
}

// respondPage writes a fetched or rendered page. The HTML path always
// carries an explicit same-origin framing restriction: the origin's own
// framing directives were stripped during rewriting, and the viewport
// hosting the proxy iframes it from the same origin.
func respondPage(c echo.Context, page *model.Page) error {
	if page.HTML {
		c.Response().Header().Set(echo.HeaderXFrameOptions, "SAMEORIGIN")
		c.Response().Header().Set(echo.HeaderContentSecurityPolicy, "frame-ancestors 'self'")
		return c.HTMLBlob(http.StatusOK, page.Body)
	}
	return c.Blob(http.StatusOK, page.ContentType, page.Body)
}

func (h *ProxyHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("proxy error",
		"err", err,
		"url", c.QueryParam("url"),
	)

	switch {
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
			"error": "origin fetch timed out",
		})
	}
	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": "origin fetch failed",
	})
}
