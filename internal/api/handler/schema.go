package handler

import (
	"time"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// loginRequest accepts an email or a phone number as identifier. Empty values
// are allowed through and simply fail to authenticate.
type loginRequest struct {
	Identifier string `json:"identifier" validate:"max=254"`
	Password   string `json:"password"   validate:"max=72"`
}

type loginResponse struct {
	Token      string      `json:"token"`
	SessionID  string      `json:"session_id"`
	ExpiresAt  time.Time   `json:"expires_at"`
	User       domain.User `json:"user"`
	RedirectTo string      `json:"redirect_to"`
}

type meResponse struct {
	User       domain.User `json:"user"`
	ExpiresAt  time.Time   `json:"expires_at"`
	RedirectTo string      `json:"redirect_to"`
}

type section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

type dashboardResponse struct {
	Area     string      `json:"area"`
	User     domain.User `json:"user"`
	Sections []section   `json:"sections"`
}
