// AngelaMos | 2026
// http.go

package asset

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/andgroupco/andoffer/internal/config"
)

var tracer = otel.Tracer("github.com/andgroupco/andoffer/internal/asset")

const (
	uploadPath = "/api/v1/assets/upload"
	assetPath  = "/api/v1/assets/{id}"
)

type uploadResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`
	PublicURL string `json:"public_url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) detail() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// HTTPStorage uploads to an assets API as multipart form data. Public URLs
// returned by the API are relative to the base URL.
type HTTPStorage struct {
	client      *resty.Client
	baseURL     string
	clientID    string
	projectName string
}

func NewHTTPStorage(cfg config.AssetsConfig) (*HTTPStorage, error) {
	if cfg.BaseURL == "" || config.IsPlaceholderSecret(cfg.APIKey) {
		return nil, ErrStorageNotConfigured
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey).
		SetRetryCount(0)

	return &HTTPStorage{
		client:      client,
		baseURL:     baseURL,
		clientID:    cfg.ClientID,
		projectName: cfg.ProjectName,
	}, nil
}

func (s *HTTPStorage) Put(ctx context.Context, obj Object) (StoredObject, error) {
	ctx, span := tracer.Start(ctx, "asset.HTTPStorage.Put")
	defer span.End()

	span.SetAttributes(
		attribute.String("asset.mime_type", obj.ContentType),
		attribute.Int64("asset.size", obj.Size),
	)

	var result uploadResponse
	var apiErr errorResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetMultipartField("file", obj.Name, obj.ContentType, obj.Body).
		SetMultipartFormData(map[string]string{
			"client_id":    s.clientID,
			"project_name": s.projectName,
			"asset_type":   "image",
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(uploadPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return StoredObject{}, fmt.Errorf("upload asset: %w: %w", ErrStorage, err)
	}

	if resp.IsError() {
		span.SetStatus(codes.Error, resp.Status())
		return StoredObject{}, fmt.Errorf(
			"upload asset: %w: status %d %s",
			ErrStorage,
			resp.StatusCode(),
			apiErr.detail(),
		)
	}

	if result.ID == "" || result.PublicURL == "" {
		return StoredObject{}, fmt.Errorf(
			"upload asset: %w: incomplete response",
			ErrStorage,
		)
	}

	return StoredObject{
		ID:  result.ID,
		URL: s.publicURL(result.PublicURL),
	}, nil
}

// Delete removes a stored object. An object already gone counts as deleted.
func (s *HTTPStorage) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "asset.HTTPStorage.Delete")
	defer span.End()

	var apiErr errorResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&apiErr).
		Delete(assetPath)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete asset: %w: %w", ErrStorage, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}

	if resp.IsError() {
		span.SetStatus(codes.Error, resp.Status())
		return fmt.Errorf(
			"delete asset: %w: status %d %s",
			ErrStorage,
			resp.StatusCode(),
			apiErr.detail(),
		)
	}

	return nil
}

func (s *HTTPStorage) publicURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}
