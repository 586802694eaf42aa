package users

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/eyfs-nursery/eyfs-nursery/internal/platform/httpx"
	"github.com/eyfs-nursery/eyfs-nursery/internal/rbac"
	"github.com/eyfs-nursery/eyfs-nursery/internal/shared"
)

// Accounts covers the account operations owned by the session manager.
type Accounts interface {
	AddUser(ctx context.Context, input NewUser) (*User, error)
	DeleteUser(ctx context.Context, caller *shared.Principal, id string) error
	ResetPassword(ctx context.Context, caller *shared.Principal, id, newPassword string) error
}

// Handler manages user management endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	accounts Accounts
	guard    rbac.Middleware
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, accounts Accounts, guard rbac.Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		accounts: accounts,
		guard:    guard,
		validate: shared.NewValidator(),
	}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermUsersView))
		r.Get("/", h.listUsers)
		r.Get("/{id}", h.getUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermUsersCreate))
		r.Post("/", h.createUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermUsersEdit))
		r.Put("/{id}", h.updateUser)
		r.Post("/{id}/password", h.resetPassword)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(rbac.PermUsersDelete))
		r.Delete("/{id}", h.deleteUser)
	})
}

type userPayload struct {
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Username       string   `json:"username" validate:"required,min=3"`
	Password       string   `json:"password" validate:"omitempty,strongpw"`
	Phone          string   `json:"phone"`
	Role           string   `json:"role" validate:"required"`
	Status         string   `json:"status" validate:"required,oneof=active inactive suspended"`
	Avatar         string   `json:"avatar"`
	Qualifications []string `json:"qualifications"`
	Rooms          []string `json:"rooms"`
	ContractType   string   `json:"contractType"`
}

type UserResponse struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Username       string   `json:"username"`
	Phone          string   `json:"phone"`
	Role           string   `json:"role"`
	Status         string   `json:"status"`
	Avatar         string   `json:"avatar,omitempty"`
	CreatedAt      string   `json:"createdAt"`
	LastLogin      string   `json:"lastLogin,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	Rooms          []string `json:"rooms,omitempty"`
	ContractType   string   `json:"contractType,omitempty"`
}

// ToResponse converts a user to its API representation, without the password
// hash.
func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Name:           u.DisplayName(),
		Email:          u.Email,
		Username:       u.Username,
		Phone:          u.Phone,
		Role:           u.Role,
		Status:         u.Status,
		Avatar:         u.Avatar,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
		Qualifications: u.Qualifications,
		Rooms:          u.Rooms,
		ContractType:   u.ContractType,
	}
	if !u.LastLogin.IsZero() {
		resp.LastLogin = u.LastLogin.Format(time.RFC3339)
	}
	return resp
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	meta := shared.NewPagination(page, perPage, len(list))
	start := (meta.Page - 1) * meta.PerPage
	if start > len(list) {
		start = len(list)
	}
	end := start + meta.PerPage
	if end > len(list) {
		end = len(list)
	}
	out := make([]UserResponse, 0, end-start)
	for _, u := range list[start:end] {
		out = append(out, ToResponse(u))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"users": out,
		"meta": map[string]int{
			"page":       meta.Page,
			"perPage":    meta.PerPage,
			"total":      meta.Total,
			"totalPages": meta.TotalPages,
		},
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToResponse(*user))
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if payload.Password == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "password is required")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	user, err := h.accounts.AddUser(r.Context(), payload.toInput())
	if err != nil {
		h.logger.Error("create user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ToResponse(*user))
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	user, err := h.service.UpdateProfile(r.Context(), chi.URLParam(r, "id"), payload.toInput())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToResponse(*user))
}

type resetPasswordPayload struct {
	Password string `json:"password" validate:"required,strongpw"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload resetPasswordPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	caller := shared.PrincipalFromContext(r.Context())
	if err := h.accounts.ResetPassword(r.Context(), caller, chi.URLParam(r, "id"), payload.Password); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "password reset"})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller := shared.PrincipalFromContext(r.Context())
	if err := h.accounts.DeleteUser(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (p userPayload) toInput() NewUser {
	return NewUser{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Username:       p.Username,
		Password:       p.Password,
		Phone:          p.Phone,
		Role:           p.Role,
		Status:         p.Status,
		Avatar:         p.Avatar,
		Qualifications: p.Qualifications,
		Rooms:          p.Rooms,
		ContractType:   p.ContractType,
	}
}
