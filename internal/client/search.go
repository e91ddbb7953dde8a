package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"spyglass-proxy-go/internal/config"
	"spyglass-proxy-go/internal/model"
)

// SearchClient talks to a SearXNG-compatible search provider
// ({base}/search?q=...&format=json).
type SearchClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewSearchClient creates a SearchClient. When no provider base URL is
// configured the client is disabled and Enabled reports false.
func NewSearchClient(cfg *config.Config) *SearchClient {
	return &SearchClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.Search.BaseURL,
		apiKey:  cfg.Search.APIKey,
	}
}

// Enabled reports whether a search provider is configured.
func (c *SearchClient) Enabled() bool {
	return c.baseURL != ""
}

// providerResponse mirrors the provider's JSON answer; only the fields
// we forward are decoded.
type providerResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search queries the provider and maps its answer onto SearchResults.
// Provider-side text is returned as-is here; the service layer strips
// markup before anything leaves the process.
func (c *SearchClient) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider: unexpected status %d", resp.StatusCode)
	}

	var pr providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]model.SearchResult, 0, len(pr.Results))
	for _, r := range pr.Results {
		results = append(results, model.SearchResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}
	return results, nil
}
