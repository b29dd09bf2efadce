package api

import (
	"log/slog"
	"net/http"
	"testing"
)

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		method string
		path   string
		status int
		want   slog.Level
	}{
		{http.MethodGet, "/api/services", 200, slog.LevelInfo},
		{http.MethodPost, "/api/channels/main/publications", 422, slog.LevelWarn},
		{http.MethodGet, "/api/skills", 502, slog.LevelError},
		{http.MethodOptions, "/api/services", 204, slog.LevelDebug},
		{http.MethodGet, "/api/health", 200, slog.LevelDebug},
		{http.MethodGet, "/api/logs/stream", 200, slog.LevelDebug},
		{http.MethodGet, "/api/events", 401, slog.LevelWarn},
	}

	for _, tt := range tests {
		if got := requestLevel(tt.method, tt.path, tt.status); got != tt.want {
			t.Errorf("requestLevel(%s, %s, %d) = %v, want %v", tt.method, tt.path, tt.status, got, tt.want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	_, ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/channels/main/publications", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Access-Control-Expose-Headers"); got != "WWW-Authenticate, Link" {
		t.Errorf("Expose-Headers = %q", got)
	}
}

func TestCORSHeadersOnResponses(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("response lacks Access-Control-Allow-Headers")
	}
}
