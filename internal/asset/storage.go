// AngelaMos | 2026
// storage.go

// Package asset stores uploaded images in an external object store and keeps
// a row per stored object.
package asset

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andgroupco/andoffer/internal/config"
)

var (
	ErrStorageNotConfigured = errors.New("asset storage is not configured")
	ErrStorage              = errors.New("asset storage failure")
)

// Object is a validated upload ready to be handed to a Storage.
type Object struct {
	Name        string
	ContentType string
	Extension   string
	Size        int64
	Body        io.ReadSeeker
}

type StoredObject struct {
	ID  string
	URL string
}

type Storage interface {
	Put(ctx context.Context, obj Object) (StoredObject, error)
	Delete(ctx context.Context, id string) error
}

// NewStorage builds the driver selected by cfg.Driver.
func NewStorage(ctx context.Context, cfg config.AssetsConfig) (Storage, error) {
	switch cfg.Driver {
	case config.AssetDriverHTTP:
		return NewHTTPStorage(cfg)
	case config.AssetDriverS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf(
			"assets driver %q: %w",
			cfg.Driver,
			ErrStorageNotConfigured,
		)
	}
}
