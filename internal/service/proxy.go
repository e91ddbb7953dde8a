// Package service implements the proxy, search and render orchestration.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"spyglass-proxy-go/internal/allowlist"
	"spyglass-proxy-go/internal/client"
	"spyglass-proxy-go/internal/metrics"
	"spyglass-proxy-go/internal/model"
	"spyglass-proxy-go/internal/rewrite"
	"spyglass-proxy-go/internal/sanitize"
)

var (
	// ErrInvalidTarget is returned for missing or malformed target URLs.
	ErrInvalidTarget = errors.New("target must be a well-formed absolute http(s) URL")

	// ErrHostNotAllowed is returned before any fetch when the target
	// host is not in a non-empty allowlist.
	ErrHostNotAllowed = errors.New("target host is not allowed")
)

// ProxyService fetches a target resource, neutralizes active content
// and rewrites embedded references so navigation keeps flowing through
// the proxy. Per-request state only; the allowlist is the single piece
// of shared state and it is immutable.
type ProxyService struct {
	client   *client.PageClient
	hosts    *allowlist.Allowlist
	rewriter *rewrite.Rewriter
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewProxyService creates a ProxyService. The metrics parameter is
// optional; pass nil to disable pipeline metrics.
func NewProxyService(c *client.PageClient, hosts *allowlist.Allowlist, rw *rewrite.Rewriter, logger *slog.Logger, m *metrics.Metrics) *ProxyService {
	return &ProxyService{
		client:   c,
		hosts:    hosts,
		rewriter: rw,
		logger:   logger.With("component", "proxy_service"),
		metrics:  m,
	}
}

// parseTarget validates a client-supplied target URL. Anything that is
// not an absolute http(s) URL with a host is rejected.
func parseTarget(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrInvalidTarget
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidTarget
	}
	return u, nil
}

// isHTML reports whether an upstream content type gets the
// sanitize/rewrite treatment.
func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "text/html")
}

// Fetch runs the full pipeline for raw: validate, allowlist check,
// origin fetch (redirects followed), then for HTML sanitize + rewrite
// against the final resolved URL, or verbatim passthrough otherwise.
// Non-2xx origin pages flow through the same branch; only transport
// failures surface as errors.
func (s *ProxyService) Fetch(ctx context.Context, raw string) (*model.Page, error) {
	u, err := parseTarget(raw)
	if err != nil {
		return nil, err
	}

	if !s.hosts.Allowed(u.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}

	fetched, err := s.client.Fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched",
		"url", u.String(),
		"final_url", fetched.FinalURL.String(),
		"status", fetched.StatusCode,
		"content_type", fetched.ContentType,
	)

	if !isHTML(fetched.ContentType) {
		return &model.Page{
			FinalURL:    fetched.FinalURL,
			ContentType: fetched.ContentType,
			Body:        fetched.Body,
		}, nil
	}

	return s.pipeline(fetched.FinalURL, string(fetched.Body), fetched.ContentType), nil
}

// pipeline applies sanitize + rewrite with base as the document URL.
// Shared by the fetch and render paths.
func (s *ProxyService) pipeline(base *url.URL, html, contentType string) *model.Page {
	body := sanitize.Sanitize(html)
	body = s.rewriter.Rewrite(base, body)

	if s.metrics != nil {
		s.metrics.PagesRewritten.Inc()
	}

	return &model.Page{
		FinalURL:    base,
		ContentType: contentType,
		HTML:        true,
		Body:        []byte(body),
	}
}
