// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"id": "p1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "p1", body["data"].(map[string]any)["id"])
}

func TestPaginated_Meta(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a", "b"}, 2, 2, 5)

	meta := decodeBody(t, rec)["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["page"])
	assert.EqualValues(t, 3, meta["total_pages"])
	assert.Equal(t, true, meta["has_next"])
	assert.Equal(t, true, meta["has_prev"])
}

func TestJSONError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, fmt.Errorf("wrapped: %w", DuplicateError("slug")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "DUPLICATE", errBody["code"])
	assert.Equal(t, "slug already exists", errBody["message"])
}

func TestJSONError_PlainErrorIsGeneric500(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("pq: connection reset with secret dsn"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	errBody := decodeBody(t, rec)["error"].(map[string]any)
	assert.Equal(t, "internal server error", errBody["message"])
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestParsePageParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/products?page=0&limit=500", nil)
	p := ParsePageParams(r)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)

	r = httptest.NewRequest(http.MethodGet, "/v1/products?page=3&page_size=10", nil)
	p = ParsePageParams(r)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 20, p.Offset())

	r = httptest.NewRequest(http.MethodGet, "/v1/products?featured=yes", nil)
	assert.Nil(t, ParseBoolQuery(r, "featured"))
	r = httptest.NewRequest(http.MethodGet, "/v1/products?featured=true", nil)
	require.NotNil(t, ParseBoolQuery(r, "featured"))
}
