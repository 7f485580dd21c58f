// AngelaMos | 2026
// handler.go

package supplier

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

// RegisterRoutes mounts supplier management. Supplier records are internal,
// so every route requires STAFF or above.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/suppliers", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole(user.RolesAtLeast(user.RoleStaff)...))

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{supplierID}", h.Get)
		r.Patch("/{supplierID}", h.Update)
		r.Delete("/{supplierID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	items, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToSupplierResponseList(items))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := supplierID(w, r)
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
	var req CreateSupplierRequest
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
	id, ok := supplierID(w, r)
	if !ok {
		return
	}

	var req UpdateSupplierRequest
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
	id, ok := supplierID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func supplierID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "supplierID")
	if !catalog.IsID(id) {
		core.NotFound(w, "supplier")
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
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "supplier")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid supplier")
	default:
		core.InternalServerError(w, err)
	}
}
