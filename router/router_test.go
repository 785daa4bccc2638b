package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"zenith/config"
	"zenith/database"
	"zenith/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"},
		JWT:      config.JWTConfig{Secret: "router-test-secret", ExpireTime: time.Hour},
	}
}

func setupTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	oldDB := database.DB
	require.NoError(t, database.Init(cfg))
	t.Cleanup(func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			sqlDB.Close()
		}
		database.DB = oldDB
	})
	middleware.InitJWT(cfg)
	return SetupRouter(cfg)
}

func serve(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_BannerAndHealth(t *testing.T) {
	r := setupTestRouter(t, newTestConfig())

	w := serve(r, "GET", "/", "", "")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Zenith API is running", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	for _, path := range []string{"/health", "/healthz"} {
		w = serve(r, "GET", path, "", "")
		require.Equal(t, 200, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
		assert.Equal(t, "zenith", resp["service"])
		assert.Equal(t, "up", resp["db"])
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	r := setupTestRouter(t, newTestConfig())

	w := serve(r, "GET", "/api/projects", "", "")
	assert.Equal(t, 401, w.Code)

	w = serve(r, "GET", "/api/projects", "not-a-token", "")
	assert.Equal(t, 401, w.Code)
}

func TestRouter_AuthenticatedFlow(t *testing.T) {
	r := setupTestRouter(t, newTestConfig())

	token, err := middleware.GenerateToken("alice", "alice", time.Hour)
	require.NoError(t, err)

	w := serve(r, "POST", "/api/projects", token, `{"name":"Router"}`)
	require.Equal(t, 201, w.Code)

	w = serve(r, "GET", "/api/projects", token, "")
	require.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])

	w = serve(r, "GET", "/api/prompts/export?format=json", token, "")
	assert.Equal(t, 200, w.Code)
}

func TestRouter_NoRoute(t *testing.T) {
	r := setupTestRouter(t, newTestConfig())

	w := serve(r, "GET", "/nope", "", "")
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "接口不存在")
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	r := setupTestRouter(t, cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(r, "GET", "/api/projects", "", "").Code)
	}
	assert.Equal(t, []int{401, 401, 429}, codes)
}

func TestCORSConfig(t *testing.T) {
	all := CORSConfig(nil)
	assert.True(t, all.AllowAllOrigins)
	assert.False(t, all.AllowCredentials)

	all = CORSConfig([]string{"https://a.example", "*"})
	assert.True(t, all.AllowAllOrigins)

	some := CORSConfig([]string{"https://a.example"})
	assert.False(t, some.AllowAllOrigins)
	assert.True(t, some.AllowCredentials)
	assert.Equal(t, []string{"https://a.example"}, some.AllowOrigins)
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := newTestConfig()
	cfg.Server.CORSOrigins = []string{"https://app.example"}
	r := setupTestRouter(t, cfg)

	req := httptest.NewRequest("OPTIONS", "/api/projects", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}
