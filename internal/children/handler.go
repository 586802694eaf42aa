package children

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/httpx"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Handler manages child-record endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	guard    rbac.Middleware
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, validate: shared.NewValidator()}
}

// MountRoutes registers child routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermChildrenView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermChildrenCreate))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermChildrenEdit))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermChildrenDelete))
		r.Delete("/{id}", h.delete)
	})
}

type childPayload struct {
	FirstName      string          `json:"firstName" validate:"required"`
	LastName       string          `json:"lastName" validate:"required"`
	DateOfBirth    string          `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	ClassID        string          `json:"classId"`
	KeyPersonID    string          `json:"keyPersonId"`
	Allergies      []string        `json:"allergies"`
	ParentContacts []ParentContact `json:"parentContacts"`
	Notes          string          `json:"notes"`
}

type childResponse struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Name           string          `json:"name"`
	DateOfBirth    string          `json:"dateOfBirth"`
	ClassID        string          `json:"classId,omitempty"`
	KeyPersonID    string          `json:"keyPersonId,omitempty"`
	Allergies      []string        `json:"allergies,omitempty"`
	ParentContacts []ParentContact `json:"parentContacts,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

func toResponse(c Child) childResponse {
	return childResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Name:           c.DisplayName(),
		DateOfBirth:    c.DateOfBirth.Format("2006-01-02"),
		ClassID:        c.ClassID,
		KeyPersonID:    c.KeyPersonID,
		Allergies:      c.Allergies,
		ParentContacts: c.ParentContacts,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list children", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]childResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toResponse(c))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"children": out})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	child, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*child))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}
	child, err := h.service.Create(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(*child))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}
	child, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(*child))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (NewChild, bool) {
	var payload childPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return NewChild{}, false
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return NewChild{}, false
	}
	dob, err := time.Parse("2006-01-02", payload.DateOfBirth)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "dateOfBirth must be YYYY-MM-DD")
		return NewChild{}, false
	}
	return NewChild{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		DateOfBirth:    dob,
		ClassID:        payload.ClassID,
		KeyPersonID:    payload.KeyPersonID,
		Allergies:      payload.Allergies,
		ParentContacts: payload.ParentContacts,
		Notes:          payload.Notes,
	}, true
}
