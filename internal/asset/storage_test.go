// AngelaMos | 2026
// storage_test.go

package asset

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andgroupco/andoffer/internal/config"
)

func assetsConfig(url string) config.AssetsConfig {
	return config.AssetsConfig{
		Driver:         config.AssetDriverHTTP,
		BaseURL:        url,
		APIKey:         "ak_live_123",
		ClientID:       "andoffer",
		ProjectName:    "products",
		MaxUploadBytes: DefaultMaxUploadBytes,
		Timeout:        2 * time.Second,
	}
}

func TestHTTPStorage_Put(t *testing.T) {
	var gotAuth, gotPath string
	fields := map[string]string{}
	var gotFile, gotFileName, gotFileType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)

		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)

			body, _ := io.ReadAll(part)
			if part.FormName() == "file" {
				gotFile = string(body)
				gotFileName = part.FileName()
				gotFileType = part.Header.Get("Content-Type")
				continue
			}
			fields[part.FormName()] = string(body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"id":"a-1","name":"cat.png","size":4,"mime_type":"image/png","public_url":"/assets/andoffer/products/image/cat.png"}`))
	}))
	defer srv.Close()

	storage, err := NewHTTPStorage(assetsConfig(srv.URL + "/"))
	require.NoError(t, err)

	stored, err := storage.Put(t.Context(), Object{
		Name:        "cat.png",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer ak_live_123", gotAuth)
	assert.Equal(t, "/api/v1/assets/upload", gotPath)
	assert.Equal(t, "data", gotFile)
	assert.Equal(t, "cat.png", gotFileName)
	assert.Equal(t, "image/png", gotFileType)
	assert.Equal(t, map[string]string{
		"client_id":    "andoffer",
		"project_name": "products",
		"asset_type":   "image",
	}, fields)

	assert.Equal(t, "a-1", stored.ID)
	assert.Equal(t, srv.URL+"/assets/andoffer/products/image/cat.png", stored.URL)
}

func TestHTTPStorage_PutRejected(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	storage, err := NewHTTPStorage(assetsConfig(srv.URL))
	require.NoError(t, err)

	_, err = storage.Put(t.Context(), Object{
		Name: "cat.png", ContentType: "image/png", Body: strings.NewReader("x"),
	})
	require.ErrorIs(t, err, ErrStorage)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, 1, calls)
}

func TestHTTPStorage_Delete(t *testing.T) {
	status := http.StatusNoContent
	var gotMethod, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(status)
	}))
	defer srv.Close()

	storage, err := NewHTTPStorage(assetsConfig(srv.URL))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(t.Context(), "a-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/assets/a-1", gotPath)

	status = http.StatusNotFound
	assert.NoError(t, storage.Delete(t.Context(), "a-1"))

	status = http.StatusInternalServerError
	assert.ErrorIs(t, storage.Delete(t.Context(), "a-1"), ErrStorage)
}

func TestNewStorage(t *testing.T) {
	cfg := assetsConfig("https://assets.example.com")
	cfg.APIKey = "changeme"
	_, err := NewStorage(t.Context(), cfg)
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	cfg.Driver = "ftp"
	_, err = NewStorage(t.Context(), cfg)
	assert.ErrorIs(t, err, ErrStorageNotConfigured)

	cfg.Driver = config.AssetDriverS3
	_, err = NewStorage(t.Context(), cfg)
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

type fakeS3 struct {
	put    *s3.PutObjectInput
	body   string
	delKey string
	err    error
}

func (f *fakeS3) PutObject(
	_ context.Context,
	in *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(
	_ context.Context,
	in *s3.DeleteObjectInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.delKey = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	client := &fakeS3{}
	storage := newS3Storage(client, "offer-assets", "/products/", "https://cdn.example.com/")
	storage.now = func() time.Time {
		return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	}

	stored, err := storage.Put(t.Context(), Object{
		Name:        "cat.png",
		ContentType: "image/png",
		Extension:   ".png",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^products/2026/03/[0-9a-f-]{36}\.png$`, stored.ID)
	assert.Equal(t, "https://cdn.example.com/"+stored.ID, stored.URL)
	assert.Equal(t, "offer-assets", aws.ToString(client.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(client.put.ContentType))
	assert.Equal(t, int64(4), aws.ToInt64(client.put.ContentLength))
	assert.Equal(t, "data", client.body)

	require.NoError(t, storage.Delete(t.Context(), stored.ID))
	assert.Equal(t, stored.ID, client.delKey)

	client.err = errors.New("access denied")
	_, err = storage.Put(t.Context(), Object{Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrStorage)
}
