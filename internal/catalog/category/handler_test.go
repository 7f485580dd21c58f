// AngelaMos | 2026
// handler_test.go

package category

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

	code, resp := serve(t, r, http.MethodPost, "/categories/", `{"name":"Lighting","sort_order":2}`, staff)
	require.Equal(t, http.StatusCreated, code)
	id := resp.Data.(map[string]any)["id"].(string)

	code, resp = serve(t, r, http.MethodGet, "/categories/", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data, 1)

	code, _ = serve(t, r, http.MethodPatch, "/categories/"+id, `{"parent_id":"`+id+`"}`, staff)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, r, http.MethodPost, "/categories/", `{"name":"Lighting"}`, staff)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = serve(t, r, http.MethodPost, "/categories/", `{"name":"Lamps"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = serve(t, r, http.MethodGet, "/categories/not-an-id", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = serve(t, r, http.MethodDelete, "/categories/"+id, "", staff)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = serve(t, r, http.MethodGet, "/categories/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, code)
}
