// AngelaMos | 2026
// handler.go

package inquiry

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

// RegisterRoutes mounts the public contact form and the staff inbox.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/inquiries", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireRole(user.RolesAtLeast(user.RoleStaff)...))

			r.Get("/", h.List)
			r.Get("/{inquiryID}", h.Get)
			r.Patch("/{inquiryID}", h.UpdateStatus)
			r.Delete("/{inquiryID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inq, err := h.service.Create(
		r.Context(),
		req,
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, ToInquiryResponse(inq))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		PageParams: core.ParsePageParams(r),
		Status:     Status(r.URL.Query().Get("status")),
	}

	items, total, err := h.service.List(r.Context(), params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(
		w,
		ToListResponse(items),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := inquiryID(w, r)
	if !ok {
		return
	}

	inq, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToInquiryResponse(inq))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := inquiryID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inq, err := h.service.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToInquiryResponse(inq))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := inquiryID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	core.NoContent(w)
}

func inquiryID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "inquiryID")
	if !catalog.IsID(id) {
		core.NotFound(w, "inquiry")
		return "", false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownProduct):
		core.BadRequest(w, "product does not exist")
	case errors.Is(err, ErrInvalidStatus):
		core.BadRequest(w, "status must be one of NEW, IN_PROGRESS, RESOLVED, CLOSED")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "inquiry")
	default:
		core.InternalServerError(w, err)
	}
}
