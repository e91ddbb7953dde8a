package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spyglass-proxy-go/internal/allowlist"
	"spyglass-proxy-go/internal/client"
	"spyglass-proxy-go/internal/model"
)

// ErrRenderDisabled is returned when no remote renderer is configured.
var ErrRenderDisabled = errors.New("no renderer configured")

// RenderService is the headless-browser alternative to the fetch path:
// the remote renderer executes the page, and the result runs through
// the same sanitize/rewrite pipeline with the target URL as base.
// Allowlist rules are identical to the proxy path.
type RenderService struct {
	renderer *client.RenderClient
	hosts    *allowlist.Allowlist
	proxy    *ProxyService
	logger   *slog.Logger
}

// NewRenderService creates a RenderService.
func NewRenderService(r *client.RenderClient, hosts *allowlist.Allowlist, proxy *ProxyService, logger *slog.Logger) *RenderService {
	return &RenderService{
		renderer: r,
		hosts:    hosts,
		proxy:    proxy,
		logger:   logger.With("component", "render_service"),
	}
}

// Enabled reports whether the render path is available.
func (s *RenderService) Enabled() bool {
	return s.renderer.Enabled()
}

// Render validates raw, checks the allowlist, asks the renderer for
// post-execution HTML within its bounded wait, and sanitizes/rewrites
// the result.
func (s *RenderService) Render(ctx context.Context, raw string) (*model.Page, error) {
	if !s.renderer.Enabled() {
		return nil, ErrRenderDisabled
	}

	u, err := parseTarget(raw)
	if err != nil {
		return nil, err
	}
	if !s.hosts.Allowed(u.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}

	html, err := s.renderer.Render(ctx, u.String())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rendered", "url", u.String(), "bytes", len(html))

	// The renderer reports no redirect chain; the requested URL is the
	// best available base for link rewriting.
	return s.proxy.pipeline(u, html, "text/html; charset=utf-8"), nil
}
