package observations

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/httpx"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Handler manages observation endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers observation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermObservationsView))
		r.Get("/child/{childID}", h.listForChild)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermObservationsCreate))
		r.Post("/", h.record)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermObservationsEdit))
		r.Put("/{id}", h.amend)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermObservationsDelete))
		r.Delete("/{id}", h.delete)
	})
}

type observationPayload struct {
	ChildID    string `json:"childId"`
	Area       string `json:"area"`
	Note       string `json:"note"`
	NextSteps  string `json:"nextSteps"`
	ObservedAt string `json:"observedAt"`
}

func (h *Handler) listForChild(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListForChild(r.Context(), chi.URLParam(r, "childID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"observations": list})
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var payload observationPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	var observedAt time.Time
	if payload.ObservedAt != "" {
		parsed, err := time.Parse(time.RFC3339, payload.ObservedAt)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "observedAt must be RFC3339")
			return
		}
		observedAt = parsed
	}
	principal := shared.PrincipalFromContext(r.Context())
	authorID := ""
	if principal != nil {
		authorID = principal.UserID
	}
	obs, err := h.service.Record(r.Context(), NewObservation{
		ChildID:    payload.ChildID,
		AuthorID:   authorID,
		Area:       payload.Area,
		Note:       payload.Note,
		NextSteps:  payload.NextSteps,
		ObservedAt: observedAt,
	})
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, obs)
}

func (h *Handler) amend(w http.ResponseWriter, r *http.Request) {
	var payload observationPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	obs, err := h.service.Amend(r.Context(), chi.URLParam(r, "id"), payload.Note, payload.NextSteps)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, obs)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
