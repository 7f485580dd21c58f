// AngelaMos | 2026
// handler.go

package category

import (
	"encoding/json"
	"errors"
	"net/http"

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
) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{categoryID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireRole(user.RolesAtLeast(user.RoleStaff)...))

			r.Post("/", h.Create)
			r.Patch("/{categoryID}", h.Update)
			r.Delete("/{categoryID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToCategoryResponseList(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToDetailResponse(detail))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
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
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
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
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func categoryID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "categoryID")
	if !catalog.IsID(id) {
		core.NotFound(w, "category")
		return "", false
	}
	return id, true
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
	case errors.Is(err, ErrSelfParent):
		core.BadRequest(w, "a category cannot be its own parent")
	case errors.Is(err, ErrParentCycle):
		core.BadRequest(w, "parent category is a descendant of this category")
	case errors.Is(err, ErrUnknownParent):
		core.BadRequest(w, "unknown parent category")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid slug or parent_id")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "category")
	default:
		core.InternalServerError(w, err)
	}
}
