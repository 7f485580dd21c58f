// AngelaMos | 2026
// catalog.go

// Package catalog holds helpers shared by the product, category and
// supplier packages.
package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/andgroupco/andoffer/internal/core"
)

const MaxSlugLength = 100

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	s := slug.Make(name)
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}

// ResolveSlug returns explicit when set, otherwise a slug generated from
// name. The result always matches core.IsSlug.
func ResolveSlug(explicit, name string) (string, error) {
	s := strings.TrimSpace(explicit)
	if s == "" {
		s = Slugify(name)
	}

	if s == "" || len(s) > MaxSlugLength || !core.IsSlug(s) {
		return "", fmt.Errorf("slug %q: %w", s, core.ErrInvalidInput)
	}

	return s, nil
}

// NormalizeRef validates an optional foreign key. Blank means no reference.
func NormalizeRef(ref *string) (*string, error) {
	if ref == nil {
		return nil, nil
	}

	v := strings.TrimSpace(*ref)
	if v == "" {
		return nil, nil
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return nil, fmt.Errorf("reference %q: %w", v, core.ErrInvalidInput)
	}

	s := id.String()
	return &s, nil
}

// IsID reports whether s is a well formed record id.
func IsID(s string) bool {
	return uuid.Validate(s) == nil
}

// Clean trims s and maps blank to nil.
func Clean(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
