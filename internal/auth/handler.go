package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/httpx"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
	"github.com/eyfs-nursery/eyfs-nursery/internal/users"
)

// LoginMetrics records login outcomes. *observability.Metrics satisfies it.
type LoginMetrics interface {
	CountLogin(outcome string)
	CountLockout()
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger   *slog.Logger
	manager  *Manager
	metrics  LoginMetrics
	validate *validator.Validate
}

// NewHandler constructs a Handler instance. metrics may be nil.
func NewHandler(logger *slog.Logger, manager *Manager, metrics LoginMetrics) *Handler {
	return &Handler{logger: logger, manager: manager, metrics: metrics, validate: shared.NewValidator()}
}

// MountRoutes registers auth routes on provided router. The login endpoint
// carries its own per-IP rate limit on top of the global one.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
	r.Put("/password", h.handleChangePassword)
}

type loginPayload struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "identifier and password are required")
		return
	}
	session, err := h.manager.Login(r.Context(), payload.Identifier, payload.Password)
	if err != nil {
		h.logger.Warn("login rejected", slog.String("identifier", payload.Identifier))
		if h.metrics != nil {
			if errors.Is(err, shared.ErrAccountLocked) {
				h.metrics.CountLogin("locked")
			} else {
				h.metrics.CountLogin("failure")
			}
		}
		httpx.RespondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountLogin("success")
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token": session.Token,
		"user":  users.ToResponse(session.User),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := BearerToken(r); token != "" {
		h.manager.Logout(r.Context(), token)
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleSession is the rehydration endpoint: a client restarting with a
// stored token asks whether that session is still good.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	token := BearerToken(r)
	if token == "" {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	user, err := h.manager.Rehydrate(r.Context(), token)
	if err != nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": users.ToResponse(*user)})
}

type changePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,strongpw"`
}

func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	caller := shared.PrincipalFromContext(r.Context())
	if caller == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	var payload changePasswordPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed",
			"new password must be at least 8 characters with upper, lower, digit and symbol")
		return
	}
	if err := h.manager.ChangePassword(r.Context(), caller, payload.CurrentPassword, payload.NewPassword); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}
