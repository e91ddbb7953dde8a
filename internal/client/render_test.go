package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spyglass-proxy-go/internal/config"
)

func TestRenderClient_Render(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/content" {
			t.Errorf("path = %q, want /content", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != "https://example.com/app" {
			t.Errorf("url = %q, want target", got)
		}
		_, _ = w.Write([]byte("<html><body>executed</body></html>"))
	}))
	defer srv.Close()

	c := NewRenderClient(&config.Config{
		Render: config.RenderConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
	})
	if !c.Enabled() {
		t.Fatal("Enabled() = false with configured base URL")
	}

	html, err := c.Render(context.Background(), "https://example.com/app")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if html != "<html><body>executed</body></html>" {
		t.Errorf("html = %q", html)
	}
}

func TestRenderClient_Render_BoundedWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	defer srv.Close()

	c := NewRenderClient(&config.Config{
		Render: config.RenderConfig{BaseURL: srv.URL, TimeoutSeconds: 1},
	})

	start := time.Now()
	_, err := c.Render(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Render() expected timeout error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Render() took %v, wait bound not enforced", elapsed)
	}
}

func TestRenderClient_Render_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewRenderClient(&config.Config{
		Render: config.RenderConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
	})

	if _, err := c.Render(context.Background(), "https://example.com"); err == nil {
		t.Fatal("Render() expected error for renderer 502, got nil")
	}
}

func TestRenderClient_Disabled(t *testing.T) {
	c := NewRenderClient(&config.Config{})
	if c.Enabled() {
		t.Error("Enabled() = true without base URL")
	}
}
