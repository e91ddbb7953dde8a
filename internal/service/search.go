package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"

	"spyglass-proxy-go/internal/client"
	"spyglass-proxy-go/internal/model"
)

// ErrSearchDisabled is returned when no search provider is configured.
var ErrSearchDisabled = errors.New("no search provider configured")

// maxSearchResults caps what a single query may return to the client.
const maxSearchResults = 30

// SearchService queries the external search provider and shapes its
// answer for the result list UI.
type SearchService struct {
	client *client.SearchClient
	strip  *bluemonday.Policy
	logger *slog.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(c *client.SearchClient, logger *slog.Logger) *SearchService {
	return &SearchService{
		client: c,
		// Provider titles and snippets may carry markup; flatten them
		// to plain text before they leave the process.
		strip:  bluemonday.StrictPolicy(),
		logger: logger.With("component", "search_service"),
	}
}

// Search runs query against the provider, capping the answer at
// maxSearchResults and stripping markup from provider-controlled text.
func (s *SearchService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	if !s.client.Enabled() {
		return nil, ErrSearchDisabled
	}

	results, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	for i := range results {
		results[i].Title = s.strip.Sanitize(results[i].Title)
		results[i].Snippet = s.strip.Sanitize(results[i].Snippet)
	}

	s.logger.Debug("search done", "query", query, "results", len(results))
	return results, nil
}
