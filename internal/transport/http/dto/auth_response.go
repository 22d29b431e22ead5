package dto

import "github.com/leadcapture/lead-service/internal/domain"

// UserView is the standard user payload. It never carries the password hash.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUserView(id domain.Identity) UserView {
	return UserView{ID: id.ID, Email: id.Email, Role: id.Role}
}

// LoginData is returned by a successful login.
type LoginData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"` // "Bearer"
	ExpiresIn int64    `json:"expiresIn"` // seconds
	User      UserView `json:"user"`
}

// MeData is returned by /auth/me.
type MeData struct {
	User UserView `json:"user"`
}
