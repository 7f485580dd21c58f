// AngelaMos | 2026
// handler.go

package asset

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/middleware"
	"github.com/andgroupco/andoffer/internal/user"
)

const multipartOverhead = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /assets for STAFF and above. uploadLimiter throttles
// uploads and may be nil.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	uploadLimiter func(http.Handler) http.Handler,
) {
	r.Route("/assets", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole(user.RolesAtLeast(user.RoleStaff)...))

		upload := r.With()
		if uploadLimiter != nil {
			upload = r.With(uploadLimiter)
		}
		upload.Post("/upload", h.Upload)
		r.Get("/", h.List)
		r.Get("/{assetID}", h.Get)
		r.Delete("/{assetID}", h.Delete)
	})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxBytes()+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, ErrTooLarge)
			return
		}
		core.BadRequest(w, "invalid multipart form")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll() //nolint:errcheck // temp file cleanup
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		core.BadRequest(w, "no file provided")
		return
	}
	defer func() {
		_ = file.Close() //nolint:errcheck // read-only
	}()

	var alt *string
	if v := strings.TrimSpace(r.FormValue("alt")); v != "" {
		alt = &v
	}

	asset, err := h.service.Upload(r.Context(), Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Alt:      alt,
		Body:     file,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToAssetResponse(asset))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := core.ParsePageParams(r)

	assets, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, ToAssetResponseList(assets), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.service.Get(r.Context(), chi.URLParam(r, "assetID"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToAssetResponse(asset))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "assetID")); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		core.BadRequest(w, fmt.Sprintf(
			"file too large, max size is %dMB",
			h.service.MaxBytes()>>20,
		))
	case errors.Is(err, ErrNotImage):
		core.BadRequest(w, "only image files are allowed")
	case errors.Is(err, ErrEmpty):
		core.BadRequest(w, "file is empty")
	case errors.Is(err, ErrStorageNotConfigured):
		core.UpstreamFailure(w,
			"asset storage is not configured, set ASSETS_API_KEY and ASSETS_BASE_URL")
	case errors.Is(err, ErrStorage):
		core.UpstreamFailure(w,
			"upload to asset storage failed, check the ASSETS_API_KEY configuration")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "asset")
	default:
		core.InternalServerError(w, err)
	}
}
