package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"spyglass-proxy-go/internal/allowlist"
	"spyglass-proxy-go/internal/config"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(&config.Config{}, allowlist.New(nil), "test")
	if err := h.Health(c); err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body["ok"] {
		t.Errorf("ok = %v, want true", body["ok"])
	}
}

func TestStatus(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/proxy/status", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cfg := &config.Config{
		Search: config.SearchConfig{BaseURL: "https://search.example"},
	}
	h := NewHealthHandler(cfg, allowlist.New([]string{"example.com", "news.example.org"}), "1.2.3")
	if err := h.Status(c); err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body.status = %v, want ok", body["status"])
	}
	if body["version"] != "1.2.3" {
		t.Errorf("body.version = %v, want 1.2.3", body["version"])
	}
	if body["allowlist"] != "2 hosts" {
		t.Errorf("body.allowlist = %v, want %q", body["allowlist"], "2 hosts")
	}
	if body["search_enabled"] != true {
		t.Errorf("body.search_enabled = %v, want true", body["search_enabled"])
	}
	if body["render_enabled"] != false {
		t.Errorf("body.render_enabled = %v, want false", body["render_enabled"])
	}
}

func TestStatus_PermissiveMode(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/proxy/status", http.NoBody)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(&config.Config{}, allowlist.New(nil), "dev")
	if err := h.Status(c); err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["allowlist"] != "permissive" {
		t.Errorf("body.allowlist = %v, want permissive", body["allowlist"])
	}
}
