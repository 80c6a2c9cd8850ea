package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionUser is the identity carried inside the session cookie. It
// never includes the credential hash.
type SessionUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// SessionClaims is the signed payload of the session cookie. Expiry
// lives in the registered claims; the token ID (jti) keys the
// server-side session record used for revocation.
type SessionClaims struct {
	User SessionUser `json:"user"`
	jwt.RegisteredClaims
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// RegisterRequest holds the self-registration payload.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Email     string `json:"email" validate:"omitempty,email"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// SessionResponse returns the authenticated identity and role label.
type SessionResponse struct {
	User SessionUser `json:"user"`
	Role UserRole    `json:"role"`
}
