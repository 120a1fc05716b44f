package identity

import (
	"github.com/tradehub-io/tradehub-backend/internal/users"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
)

// RegisterRequest captures the signup payload.
type RegisterRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=64"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     enums.Role `json:"role" validate:"required"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
