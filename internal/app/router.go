package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/eyfs-nursery/eyfs-nursery/internal/auth"
	"github.com/eyfs-nursery/eyfs-nursery/internal/children"
	"github.com/eyfs-nursery/eyfs-nursery/internal/classes"
	"github.com/eyfs-nursery/eyfs-nursery/internal/messages"
	"github.com/eyfs-nursery/eyfs-nursery/internal/observability"
	"github.com/eyfs-nursery/eyfs-nursery/internal/observations"
	"github.com/eyfs-nursery/eyfs-nursery/internal/planning"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/users"
	"github.com/eyfs-nursery/eyfs-nursery/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	AuthHandler         *auth.Handler
	UsersHandler        *users.Handler
	RBACHandler         *rbac.Handler
	ChildrenHandler     *children.Handler
	ClassesHandler      *classes.Handler
	ObservationsHandler *observations.Handler
	PlanningHandler     *planning.Handler
	MessagesHandler     *messages.Handler
	JobHandler          *jobs.Handler
	Authenticate        func(http.Handler) http.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:       params.Logger,
		Config:       params.Config,
		Metrics:      params.Metrics,
		Authenticate: params.Authenticate,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	if params.UsersHandler != nil {
		r.Route("/users", params.UsersHandler.MountRoutes)
	}
	if params.RBACHandler != nil {
		r.Route("/rbac", params.RBACHandler.MountRoutes)
	}
	if params.ChildrenHandler != nil {
		r.Route("/children", params.ChildrenHandler.MountRoutes)
	}
	if params.ClassesHandler != nil {
		r.Route("/classes", params.ClassesHandler.MountRoutes)
	}
	if params.ObservationsHandler != nil {
		r.Route("/observations", params.ObservationsHandler.MountRoutes)
	}
	if params.PlanningHandler != nil {
		r.Route("/planning", params.PlanningHandler.MountRoutes)
	}
	if params.MessagesHandler != nil {
		r.Route("/messages", params.MessagesHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
