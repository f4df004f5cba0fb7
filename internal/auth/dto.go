package auth

import (
	"github.com/C00lPIXER/aperture/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput pairs the (possibly expired) access token id with the
// refresh token issued alongside it.
type RefreshInput struct {
	AccessTokenID string
	RefreshToken  string
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse contains the tokens and user produced by login or refresh.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
