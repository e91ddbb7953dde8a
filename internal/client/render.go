package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"spyglass-proxy-go/internal/config"
)

// RenderClient asks a remote headless-browser service for
// post-execution HTML ({base}/content?url=..., browserless-style).
// Its contract: given a URL, return rendered HTML or fail within a
// bounded wait.
type RenderClient struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewRenderClient creates a RenderClient. When no renderer base URL is
// configured the client is disabled and Enabled reports false.
func NewRenderClient(cfg *config.Config) *RenderClient {
	timeout := time.Duration(cfg.Render.TimeoutSeconds) * time.Second
	return &RenderClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.Render.BaseURL,
		timeout:    timeout,
	}
}

// Enabled reports whether a remote renderer is configured.
func (c *RenderClient) Enabled() bool {
	return c.baseURL != ""
}

// Render returns the fully-executed HTML for target. The wait is
// bounded by the configured timeout regardless of the caller's context.
func (c *RenderClient) Render(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/content?url=%s", c.baseURL, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build render request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("renderer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read rendered page: %w", err)
	}
	return string(body), nil
}
