package classes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/httpx"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
)

// Handler manages room/cohort endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers class routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermClassesView))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermClassesEdit))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})
}

type classPayload struct {
	Name       string `json:"name"`
	AgeRange   string `json:"ageRange"`
	Capacity   int    `json:"capacity"`
	RoomLeader string `json:"roomLeader"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"classes": list})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	class, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, class)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload classPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	class, err := h.service.Create(r.Context(), Class{
		Name:       payload.Name,
		AgeRange:   payload.AgeRange,
		Capacity:   payload.Capacity,
		RoomLeader: payload.RoomLeader,
	})
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, class)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var payload classPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	class, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), Class{
		Name:       payload.Name,
		AgeRange:   payload.AgeRange,
		Capacity:   payload.Capacity,
		RoomLeader: payload.RoomLeader,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, class)
}
