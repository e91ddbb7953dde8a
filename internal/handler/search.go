package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"spyglass-proxy-go/internal/model"
	"spyglass-proxy-go/internal/service"
)

// SearchHandler serves the search-result aggregation endpoint.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger.With("component", "search_handler"),
	}
}

// Handle answers GET /search?q=... with up to 30 provider results.
func (h *SearchHandler) Handle(c echo.Context) error {
	query := c.QueryParam("q")
	if strings.TrimSpace(query) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "missing q parameter",
		})
	}

	results, err := h.service.Search(c.Request().Context(), query)
	if err != nil {
		h.logger.Error("search error", "err", err, "query", query)
		if errors.Is(err, service.ErrSearchDisabled) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "search is not configured",
			})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "search provider failed",
		})
	}

	if results == nil {
		results = []model.SearchResult{}
	}
	return c.JSON(http.StatusOK, model.SearchResponse{
		Query:   query,
		Results: results,
	})
}
