// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/andgroupco/andoffer/internal/catalog"
	"github.com/andgroupco/andoffer/internal/core"
	"github.com/andgroupco/andoffer/internal/middleware"
	"github.com/andgroupco/andoffer/internal/user"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/products", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.List)
		r.With(optionalAuth).Get("/{productID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireRole(user.RolesAtLeast(user.RoleStaff)...))

			r.Post("/", h.Create)
			r.Patch("/{productID}", h.Update)
			r.Delete("/{productID}", h.Delete)
			r.Put("/{productID}/assets", h.SetAssets)
		})
	})
}

func canSeeUnpublished(r *http.Request) bool {
	return user.Role(middleware.GetUserRole(r.Context())).AtLeast(user.RoleStaff)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ListParams{
		PageParams: core.ParsePageParams(r),
		Featured:   core.ParseBoolQuery(r, "featured"),
		CategoryID: q.Get("category_id"),
		SupplierID: q.Get("supplier_id"),
		Query:      strings.TrimSpace(q.Get("q")),
	}

	if v := q.Get("status"); v != "" {
		params.Status = Status(strings.ToUpper(v))
		if !params.Status.Valid() {
			core.BadRequest(w, "status must be one of [DRAFT PUBLISHED ARCHIVED]")
			return
		}
	}

	if params.CategoryID != "" && !catalog.IsID(params.CategoryID) {
		core.BadRequest(w, "category_id must be a valid UUID")
		return
	}
	if params.SupplierID != "" && !catalog.IsID(params.SupplierID) {
		core.BadRequest(w, "supplier_id must be a valid UUID")
		return
	}
	if len(params.Query) > 100 {
		core.BadRequest(w, "q must be at most 100 characters")
		return
	}

	items, total, err := h.service.List(r.Context(), params, canSeeUnpublished(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, ToListResponse(items), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if !catalog.IsID(id) {
		core.NotFound(w, "product")
		return
	}

	detail, err := h.service.Get(r.Context(), id, canSeeUnpublished(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	detail, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToDetailResponse(detail))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if !catalog.IsID(id) {
		core.NotFound(w, "product")
		return
	}

	var req UpdateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	detail, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if !catalog.IsID(id) {
		core.NotFound(w, "product")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SetAssets(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if !catalog.IsID(id) {
		core.NotFound(w, "product")
		return
	}

	var req SetAssetsRequest
	if !h.decode(w, r, &req) {
		return
	}

	detail, err := h.service.SetImages(r.Context(), id, req.AssetIDs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSlugTaken):
		core.Conflict(w, "slug already exists")
	case errors.Is(err, ErrInvalidPrice):
		core.BadRequest(w, "price must be greater than zero")
	case errors.Is(err, ErrUnknownRef):
		core.BadRequest(w, "unknown category, supplier or asset")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid slug or reference")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "product")
	default:
		core.InternalServerError(w, err)
	}
}
