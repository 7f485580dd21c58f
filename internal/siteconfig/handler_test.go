// AngelaMos | 2026
// handler_test.go

package siteconfig

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/middleware/middlewaretest"
)

func serve(t *testing.T, h http.Handler, method, path, body, token string) (int, core.Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp core.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func TestHandler(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(newMemRepo())).RegisterRoutes(r, middlewaretest.Authenticator())
	admin := middlewaretest.Token("a1", "ADMIN")

	batch := `[{"key":"site_name","value":"AND Offer","label":"Site name"},
		{"key":"whatsapp_enabled","value":"true"}]`

	code, _ := serve(t, r, http.MethodPost, "/config/", batch, middlewaretest.Token("s1", "STAFF"))
	assert.Equal(t, http.StatusForbidden, code)

	code, resp := serve(t, r, http.MethodPost, "/config/", batch, admin)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data, 2)

	code, _ = serve(t, r, http.MethodPost, "/config/", `{"key":"site_name"}`, admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, r, http.MethodPost, "/config/", `[]`, admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, r, http.MethodPost, "/config/", `[{"key":"whatsapp_enabled","value":"on"}]`, admin)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = serve(t, r, http.MethodGet, "/config/", "", "")
	require.Equal(t, http.StatusOK, code)
	items := resp.Data.([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "site_name", items[0].(map[string]any)["key"])

	code, resp = serve(t, r, http.MethodGet, "/config/?keys=site_name,support_email", "", "")
	require.Equal(t, http.StatusOK, code)
	values := resp.Data.(map[string]any)
	assert.Equal(t, "AND Offer", values["site_name"])
	assert.Contains(t, values, "support_email")
	assert.Nil(t, values["support_email"])

	code, _ = serve(t, r, http.MethodGet, "/config/support_phone", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = serve(t, r, http.MethodGet, "/config/whatsapp_enabled", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "true", resp.Data.(map[string]any)["value"])
}
