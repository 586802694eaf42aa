package planning

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/httpx"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
)

// Handler manages planning calendar endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers planning routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermPlanningView))
		r.Get("/", h.week)
		r.Get("/export", h.exportCSV)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermPlanningCreate))
		r.Post("/", h.plan)
		r.Post("/import", h.importCSV)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermPlanningEdit))
		r.Put("/{id}", h.move)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermPlanningDelete))
		r.Delete("/{id}", h.remove)
	})
}

type activityPayload struct {
	Title     string `json:"title"`
	Area      string `json:"area"`
	ClassID   string `json:"classId"`
	WeekStart string `json:"weekStart"`
	Day       string `json:"day"`
	Slot      string `json:"slot"`
	Resources string `json:"resources"`
	Notes     string `json:"notes"`
}

func (h *Handler) week(w http.ResponseWriter, r *http.Request) {
	weekStart, err := time.Parse("2006-01-02", r.URL.Query().Get("week"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "week query must be YYYY-MM-DD")
		return
	}
	list, err := h.service.Week(r.Context(), weekStart, r.URL.Query().Get("class"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"activities": list})
}

func (h *Handler) plan(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}
	activity, err := h.service.Plan(r.Context(), input)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, activity)
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decode(w, r)
	if !ok {
		return
	}
	activity, err := h.service.Move(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, activity)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	weekStart, err := time.Parse("2006-01-02", r.URL.Query().Get("week"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "week query must be YYYY-MM-DD")
		return
	}
	list, err := h.service.Week(r.Context(), weekStart, r.URL.Query().Get("class"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="planning.csv"`)
	if err := WriteCSV(w, list); err != nil {
		h.logger.Error("export planning csv", slog.Any("error", err))
	}
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	inputs, err := ReadCSV(r.Body)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	count, err := h.service.Import(r.Context(), inputs)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int{"imported": count})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (NewActivity, bool) {
	var payload activityPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return NewActivity{}, false
	}
	weekStart, err := time.Parse("2006-01-02", payload.WeekStart)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "weekStart must be YYYY-MM-DD")
		return NewActivity{}, false
	}
	day, ok := weekdays[strings.ToLower(payload.Day)]
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "day must be monday through friday")
		return NewActivity{}, false
	}
	return NewActivity{
		Title:     payload.Title,
		Area:      payload.Area,
		ClassID:   payload.ClassID,
		WeekStart: weekStart,
		Day:       day,
		Slot:      strings.ToLower(payload.Slot),
		Resources: payload.Resources,
		Notes:     payload.Notes,
	}, true
}

