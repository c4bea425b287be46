package auth

import (
	"github.com/shoptodo/shoptodo-backend/internal/session"
	"github.com/shoptodo/shoptodo-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates an account. Profile is optional and is stored in
// the user's shop, not in the users table.
type RegisterRequest struct {
	Username string           `json:"username" validate:"required,min=3,max=32,username"`
	Password string           `json:"password" validate:"required,min=8,max=128"`
	Profile  *session.Profile `json:"profile,omitempty"`
}

// RefreshRequest pairs the (possibly expired) access token with its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse is returned by register, login and refresh.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int            `json:"expires_in"`
	User         *users.UserDTO `json:"user"`
}
