package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
	// JTI doubles as the refresh session id. Generated when empty.
	JTI string
}

// AccessTokenClaims represents the typed JWT issued to shoppers and admins.
type AccessTokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}
