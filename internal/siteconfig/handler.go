// AngelaMos | 2026
// handler.go

package siteconfig

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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
	r.Route("/config", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Get("/{key}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireRole(user.RolesAtLeast(user.RoleAdmin)...))

			r.Post("/", h.Batch)
		})
	})
}

// GetAll lists every entry, or only the requested ones when ?keys=a,b is set.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("keys"); raw != "" {
		values, err := h.service.GetMany(r.Context(), splitKeys(raw))
		if err != nil {
			h.writeError(w, err)
			return
		}
		core.OK(w, values)
		return
	}

	entries, err := h.service.GetAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToEntryResponseList(entries))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToEntryResponse(e))
}

// Batch upserts a JSON array of {key, value, label} in one transaction.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req.Items); err != nil {
		core.BadRequest(w, "request body must be an array of {key, value, label}")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entries, err := h.service.BatchUpsert(r.Context(), req.Items)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToEntryResponseList(entries))
}

func splitKeys(raw string) []string {
	var keys []string
	for k := range strings.SplitSeq(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidValue):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "config key")
	default:
		core.InternalServerError(w, err)
	}
}
