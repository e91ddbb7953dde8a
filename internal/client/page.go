// Package client provides the HTTP clients for origins and external
// collaborators (search provider, remote renderer).
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"spyglass-proxy-go/internal/config"
	"spyglass-proxy-go/internal/metrics"
)

// FetchedPage is the raw result of an origin fetch, before any
// sanitizing or rewriting.
type FetchedPage struct {
	// FinalURL is where the fetch landed after redirects were followed.
	FinalURL    *url.URL
	StatusCode  int
	ContentType string
	Body        []byte
}

// PageClient fetches target resources from arbitrary origins.
type PageClient struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewPageClient creates a PageClient with connection pooling and timeouts.
// The metrics parameter is optional; pass nil to disable fetch metrics recording.
func NewPageClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *PageClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Proxy.IdleConnections,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &PageClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Proxy.TimeoutSeconds) * time.Second,
			// Redirects are followed transparently; the final resolved
			// URL, not the requested one, becomes the rewrite base.
		},
		userAgent: cfg.Proxy.UserAgent,
		logger:    logger.With("component", "page_client"),
		metrics:   m,
	}
}

// Fetch GETs target and reads the full body. The provided context
// controls the lifetime of the request: when it is canceled (e.g. the
// client disconnects), the origin fetch is canceled too. Non-2xx
// responses are not errors — their bodies are read and returned like
// any other page. Transport-level failures are.
func (c *PageClient) Fetch(ctx context.Context, target string) (*FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build origin request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("origin fetch", "url", target)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	if err != nil {
		c.record(metrics.OutcomeError, duration)
		return nil, fmt.Errorf("origin fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(metrics.OutcomeError, time.Since(start).Seconds())
		return nil, fmt.Errorf("read origin body: %w", err)
	}
	c.record(metrics.OutcomeOK, duration)

	return &FetchedPage{
		FinalURL:    resp.Request.URL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *PageClient) record(outcome string, duration float64) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamFetches.WithLabelValues(outcome).Inc()
	c.metrics.UpstreamDuration.WithLabelValues(outcome).Observe(duration)
}
