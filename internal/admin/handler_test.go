// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/config"
	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/middleware/middlewaretest"
)

func newRouter() http.Handler {
	cfg := &config.Config{
		App: config.AppConfig{Environment: "production", Version: "1.2.0"},
		Mail: config.MailConfig{
			Driver:  config.MailDriverHTTP,
			BaseURL: "https://mail.example.com",
			APIKey:  "mail-secret",
		},
		Assets: config.AssetsConfig{
			Driver: config.AssetDriverS3,
			S3: config.S3Config{
				Bucket:          "offer-assets",
				Region:          "ap-east-1",
				SecretAccessKey: "s3-secret",
				PublicBaseURL:   "https://cdn.example.com",
			},
		},
	}

	r := chi.NewRouter()
	NewHandler(HandlerConfig{
		DBStats:    func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, InUse: 2} },
		RedisStats: func() *redis.PoolStats { return &redis.PoolStats{Hits: 9} },
		DBPing:     func(context.Context) error { return nil },
		RedisPing:  func(context.Context) error { return errors.New("refused") },
		Counts:     fakeCounts{},
		Inquiries:  fakeInquiries{},
		Config:     cfg,
	}).RegisterRoutes(r, middlewaretest.Authenticator())
	return r
}

func get(t *testing.T, h http.Handler, path, token string) (*httptest.ResponseRecorder, core.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandler_RoleGates(t *testing.T) {
	r := newRouter()

	tests := []struct {
		path string
		role string
		want int
	}{
		{"/admin/dashboard", "", http.StatusUnauthorized},
		{"/admin/dashboard", "BUYER", http.StatusForbidden},
		{"/admin/dashboard", "STAFF", http.StatusOK},
		{"/admin/stats", "STAFF", http.StatusForbidden},
		{"/admin/stats", "ADMIN", http.StatusOK},
		{"/admin/stats/runtime", "SUPER_ADMIN", http.StatusOK},
		{"/admin/config-check", "ADMIN", http.StatusForbidden},
		{"/admin/config-check", "SUPER_ADMIN", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.path+" as "+tt.role, func(t *testing.T) {
			token := ""
			if tt.role != "" {
				token = middlewaretest.Token("u1", tt.role)
			}
			rec, _ := get(t, r, tt.path, token)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_SystemStats(t *testing.T) {
	_, resp := get(t, newRouter(), "/admin/stats", middlewaretest.Token("a1", "ADMIN"))

	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["database"].(map[string]any)["healthy"])
	assert.Equal(t, false, data["redis"].(map[string]any)["healthy"])
	assert.InDelta(t, 25, data["database"].(map[string]any)["stats"].(map[string]any)["max_open_connections"], 0)
}

func TestHandler_ConfigCheckHidesSecrets(t *testing.T) {
	rec, resp := get(t, newRouter(), "/admin/config-check", middlewaretest.Token("root", "SUPER_ADMIN"))

	body := rec.Body.String()
	assert.NotContains(t, body, "mail-secret")
	assert.NotContains(t, body, "s3-secret")

	data := resp.Data.(map[string]any)
	mail := data["mail"].(map[string]any)
	assert.Equal(t, true, mail["configured"])
	assets := data["assets"].(map[string]any)
	assert.Equal(t, true, assets["configured"])
	assert.Equal(t, "https://cdn.example.com", assets["base_url"])
	assert.Equal(t, false, data["telemetry"].(map[string]any)["configured"])
}
