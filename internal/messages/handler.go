package messages

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

// Handler manages parent-communication endpoints.
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

// MountRoutes registers message routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermCommunicationView))
		r.Get("/", h.list)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermCommunicationSend))
		r.Post("/", h.send)
	})
}

type messagePayload struct {
	ChildID   string `json:"childId"`
	Subject   string `json:"subject" validate:"required,max=200"`
	Body      string `json:"body" validate:"required"`
	Recipient string `json:"recipient" validate:"required,email"`
}

type messageResponse struct {
	ID          string `json:"id"`
	ChildID     string `json:"childId,omitempty"`
	SenderID    string `json:"senderId"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	Recipient   string `json:"recipient"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	DeliveredAt string `json:"deliveredAt,omitempty"`
}

func toResponse(m Message) messageResponse {
	out := messageResponse{
		ID:        m.ID,
		ChildID:   m.ChildID,
		SenderID:  m.SenderID,
		Subject:   m.Subject,
		Body:      m.Body,
		Recipient: m.Recipient,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if !m.DeliveredAt.IsZero() {
		out.DeliveredAt = m.DeliveredAt.Format(time.RFC3339)
	}
	return out
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list messages", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]messageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toResponse(m))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"messages": out})
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var payload messagePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	msg, err := h.service.Send(r.Context(), NewMessage{
		ChildID:   payload.ChildID,
		SenderID:  principal.UserID,
		Subject:   payload.Subject,
		Body:      payload.Body,
		Recipient: payload.Recipient,
	})
	if err != nil {
		h.logger.Error("send message", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, toResponse(*msg))
}
