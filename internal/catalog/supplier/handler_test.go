// AngelaMos | 2026
// handler_test.go

package supplier

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
	staff := middlewaretest.Token("s1", "STAFF")
	buyer := middlewaretest.Token("b1", "BUYER")

	code, resp := serve(t, r, http.MethodPost, "/suppliers/",
		`{"name":"Yiwu Trading","email":"ops@yiwu.example"}`, staff)
	require.Equal(t, http.StatusCreated, code)
	data := resp.Data.(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "CN", data["country"])
	assert.Equal(t, true, data["active"])

	code, _ = serve(t, r, http.MethodPost, "/suppliers/", `{"name":"X","country":"CHN"}`, staff)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, r, http.MethodPost, "/suppliers/", `{"name":"X","email":"nope"}`, staff)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, r, http.MethodGet, "/suppliers/", "", buyer)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = serve(t, r, http.MethodGet, "/suppliers/", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = serve(t, r, http.MethodPatch, "/suppliers/"+id, `{"active":false}`, staff)
	assert.Equal(t, http.StatusOK, code)

	code, resp = serve(t, r, http.MethodGet, "/suppliers/?active=true", "", staff)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data, 0)

	code, resp = serve(t, r, http.MethodGet, "/suppliers/"+id, "", staff)
	require.Equal(t, http.StatusOK, code)
	detail := resp.Data.(map[string]any)
	require.Contains(t, detail, "recent_products")
	assert.Empty(t, detail["recent_products"])

	code, resp = serve(t, r, http.MethodGet, "/suppliers/", "", staff)
	require.Equal(t, http.StatusOK, code)
	listed := resp.Data.([]any)
	require.Len(t, listed, 1)
	assert.NotContains(t, listed[0].(map[string]any), "recent_products")

	code, _ = serve(t, r, http.MethodDelete, "/suppliers/"+id, "", staff)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = serve(t, r, http.MethodGet, "/suppliers/"+id, "", staff)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = serve(t, r, http.MethodGet, "/suppliers/bad", "", staff)
	assert.Equal(t, http.StatusNotFound, code)
}
