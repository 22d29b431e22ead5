package handlers

import (
	"context"
	"net/http"

	"github.com/leadcapture/lead-service/internal/application/auth"
	"github.com/leadcapture/lead-service/internal/domain"
	"github.com/leadcapture/lead-service/internal/transport/http/dto"
	"github.com/leadcapture/lead-service/internal/transport/http/middleware"
	"github.com/leadcapture/lead-service/internal/transport/http/response"
	"github.com/leadcapture/lead-service/internal/transport/http/validation"
)

// AuthService is what the HTTP layer needs from the auth application service.
type AuthService interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
	CreateUser(ctx context.Context, email, password, role string) (domain.Identity, error)
	ListUsers(ctx context.Context) ([]domain.Identity, error)
	GetUserByID(ctx context.Context, id string) (domain.Identity, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, r, dto.LoginData{
		Token:     res.Token,
		TokenType: "Bearer",
		ExpiresIn: res.ExpiresIn,
		User:      dto.NewUserView(res.User),
	})
}

// Me returns the identity already resolved by the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}
	response.OK(w, r, dto.MeData{User: dto.NewUserView(id)})
}

func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := validation.Struct(&req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	id, err := h.svc.CreateUser(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, r, "user created", dto.NewUserView(id))
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	users := make([]dto.UserView, 0, len(ids))
	for _, id := range ids {
		users = append(users, dto.NewUserView(id))
	}
	response.OK(w, r, users)
}
