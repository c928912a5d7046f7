package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wricardo/klondike-game/api"
	"github.com/wricardo/klondike-game/transport/mcp"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

var envKeys = []string{
	"HOST", "PORT", "CONFIG_DIR", "DEBUG", "NGROK_ENABLED",
	"NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN", "NGROK_DOMAIN", "TICK_INTERVAL", "SESSION_TTL",
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Klondike Solitaire Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, envKeys...)

	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Addr() != "localhost:8080" {
		t.Errorf("Expected localhost:8080, got %s", cfg.Addr())
	}
	if cfg.ConfigDir != "configs" {
		t.Errorf("Expected config dir 'configs', got %s", cfg.ConfigDir)
	}
	if cfg.Mode != "server" {
		t.Errorf("Expected default mode 'server', got %s", cfg.Mode)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("Expected 1s tick, got %s", cfg.TickInterval)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected 24h session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.Debug || cfg.NgrokEnabled {
		t.Error("Debug and ngrok should be off by default")
	}
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	unsetEnv(t, envKeys...)
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIG_DIR", "env-configs")
	t.Setenv("NGROK_ENABLED", "true")
	t.Setenv("NGROK_AUTH_TOKEN", "underscore-token")

	cfg, err := loadConfig([]string{"-port", "9001", "-debug", "stdio-mcp"})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.Port != 9001 {
		t.Errorf("Expected flag port 9001, got %d", cfg.Port)
	}
	if cfg.ConfigDir != "env-configs" {
		t.Errorf("Expected env config dir, got %s", cfg.ConfigDir)
	}
	if !cfg.Debug {
		t.Error("Expected debug from flag")
	}
	if !cfg.NgrokEnabled {
		t.Error("Expected ngrok enabled from env")
	}
	if cfg.NgrokAuth != "underscore-token" {
		t.Errorf("Expected fallback auth token, got %q", cfg.NgrokAuth)
	}
	if cfg.Mode != "stdio-mcp" {
		t.Errorf("Expected mode stdio-mcp, got %s", cfg.Mode)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "Non-numeric port", env: map[string]string{"PORT": "abc"}},
		{name: "Unknown flag", args: []string{"-bogus"}},
		{name: "Zero tick", args: []string{"-tick", "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, envKeys...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := loadConfig(tt.args); err == nil {
				t.Error("Expected configuration error")
			}
		})
	}
}

func TestInitializeServices(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, sessions, err := initializeServices(&serverConfig{ConfigDir: "configs"})
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if gameService == nil || sessions == nil {
		t.Fatal("Expected game service and session manager to be initialized")
	}

	info, err := gameService.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if sessions.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", sessions.Count())
	}
	if info.ConfigName == "" {
		t.Error("Expected session to use the default config")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, _, err := initializeServices(&serverConfig{ConfigDir: "/non/existent/path"})
	if err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestTickRoutine(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, _, err := initializeServices(&serverConfig{ConfigDir: "configs"})
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := gameService.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tickRoutine(ctx, gameService, nil, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for {
		state, err := gameService.GetGameState(context.Background(), info.ID)
		if err != nil {
			t.Fatalf("GetGameState failed: %v", err)
		}
		if state.ElapsedSeconds >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Expected clock to advance, elapsed=%d", state.ElapsedSeconds)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewRouter(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, _, err := initializeServices(&serverConfig{ConfigDir: "configs"})
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	router := newRouter(api.NewServer(gameService, nil), mcp.NewClient("http://127.0.0.1:0"))

	t.Run("API is mounted at root", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("MCP rejects GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", w.Code)
		}
	})

	t.Run("MCP lists tools", func(t *testing.T) {
		body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", body))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		for _, tool := range []string{"draw", "move_to_foundation", "move_to_tableau", "hints"} {
			if !strings.Contains(w.Body.String(), `"`+tool+`"`) {
				t.Errorf("Expected tool %s in tools/list response", tool)
			}
		}
	})
}

func TestAPIAvailable(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected bool
	}{
		{name: "Healthy", status: http.StatusOK, expected: true},
		{name: "Not found still answers", status: http.StatusNotFound, expected: true},
		{name: "Server error", status: http.StatusServiceUnavailable, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var closed atomic.Bool
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("Expected /health, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"status":"unknown"}`))
			}))
			defer ts.Close()

			transport := &closeTracker{base: http.DefaultTransport, closed: &closed}
			client := &http.Client{Transport: transport, Timeout: time.Second}

			if got := apiAvailable(client, ts.URL); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if !closed.Load() {
				t.Error("Expected response body to be closed")
			}
		})
	}

	t.Run("Nothing listening", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		if apiAvailable(&http.Client{Timeout: time.Second}, url) {
			t.Error("Expected closed server to be unavailable")
		}
	})
}

// closeTracker records whether the caller closed the response body
type closeTracker struct {
	base   http.RoundTripper
	closed *atomic.Bool
}

func (c *closeTracker) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := c.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	resp.Body = &trackedBody{ReadCloser: resp.Body, closed: c.closed}
	return resp, nil
}

type trackedBody struct {
	io.ReadCloser
	closed *atomic.Bool
}

func (b *trackedBody) Close() error {
	b.closed.Store(true)
	return b.ReadCloser.Close()
}

func TestGameService_ConcurrentReadsAndAccess(t *testing.T) {
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, _, err := initializeServices(&serverConfig{ConfigDir: "configs"})
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	ctx := context.Background()
	info, err := gameService.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8*4)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, err := gameService.GetSession(ctx, info.ID); err != nil {
					errs <- err
					return
				}
				if _, err := gameService.ListSessions(ctx); err != nil {
					errs <- err
					return
				}
				if _, err := gameService.GetGameState(ctx, info.ID); err != nil {
					errs <- err
					return
				}
				if _, err := gameService.GetHints(ctx, info.ID); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	after, err := gameService.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if after.LastAccessedAt.Before(info.LastAccessedAt) {
		t.Error("Expected LastAccessedAt to move forward")
	}
}
