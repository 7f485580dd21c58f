// AngelaMos | 2026
// pagination.go

package core

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageParams struct {
	Page     int
	PageSize int
}

func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePageParams reads page and page_size (or limit) from the query string.
func ParsePageParams(r *http.Request) PageParams {
	size := ParseIntQuery(r, "page_size", 0)
	if size == 0 {
		size = ParseIntQuery(r, "limit", DefaultPageSize)
	}

	p := PageParams{
		Page:     ParseIntQuery(r, "page", 1),
		PageSize: size,
	}
	p.Normalize()
	return p
}

func ParseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

// ParseBoolQuery returns nil when the key is absent or unparsable.
func ParseBoolQuery(r *http.Request, key string) *bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}

	return &parsed
}
