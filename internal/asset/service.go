// AngelaMos | 2026
// service.go

package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/andgroupco/andoffer/internal/core"
)

// DefaultMaxUploadBytes is 15 MiB.
const DefaultMaxUploadBytes int64 = 15 << 20

var (
	ErrTooLarge = errors.New("file too large")
	ErrNotImage = errors.New("only image files are allowed")
	ErrEmpty    = errors.New("file is empty")
)

// Upload is a file received from a client.
type Upload struct {
	FileName string
	Size     int64
	Alt      *string
	Body     io.Reader
}

type Service struct {
	repo     Repository
	storage  Storage
	maxBytes int64
}

func NewService(repo Repository, storage Storage, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	return &Service{
		repo:     repo,
		storage:  storage,
		maxBytes: maxBytes,
	}
}

func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Upload checks size and sniffed content type, stores the bytes, and then
// records the asset. A failed insert removes the stored object again.
func (s *Service) Upload(ctx context.Context, in Upload) (*Asset, error) {
	if in.Size > s.maxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, ErrNotImage
	}

	if s.storage == nil {
		return nil, ErrStorageNotConfigured
	}

	name := sanitizeFileName(in.FileName, mt.Extension())
	contentType, _, _ := strings.Cut(mt.String(), ";")

	stored, err := s.storage.Put(ctx, Object{
		Name:        name,
		ContentType: contentType,
		Extension:   mt.Extension(),
		Size:        int64(len(data)),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}
	core.AddSpanEvent(ctx, "asset.stored",
		attribute.String("storage_id", stored.ID),
		attribute.Int("size_bytes", len(data)),
	)

	asset := &Asset{
		ID:        uuid.New().String(),
		Type:      TypeImage,
		StorageID: stored.ID,
		URL:       stored.URL,
		FileName:  name,
		MimeType:  contentType,
		SizeBytes: int64(len(data)),
		Alt:       in.Alt,
	}

	if err := s.repo.Create(ctx, asset); err != nil {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), stored.ID); delErr != nil {
			slog.Warn("remove orphaned asset",
				"storage_id", stored.ID,
				"error", delErr,
			)
		}
		return nil, err
	}

	return asset, nil
}

func (s *Service) List(
	ctx context.Context,
	params core.PageParams,
) ([]Asset, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes the stored object before the row so a storage failure
// leaves the record in place for a retry.
func (s *Service) Delete(ctx context.Context, id string) error {
	asset, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.storage == nil {
		return ErrStorageNotConfigured
	}

	if err := s.storage.Delete(ctx, asset.StorageID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func sanitizeFileName(name, ext string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload" + ext
	}
	if len(base) > 255 {
		base = base[len(base)-255:]
	}
	return base
}
