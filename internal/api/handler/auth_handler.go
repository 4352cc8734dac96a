package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-api/internal/api/metrics"
	"github.com/marketplace/identity-api/internal/core/domain"
	"github.com/marketplace/identity-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an email or phone identifier and opens a session.
//
// When the request already carries a valid bearer token, the session behind
// it is replaced by the new one.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	previous, _ := c.Get("session_id").(string)

	start := time.Now()
	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Identifier:        req.Identifier,
		Secret:            req.Password,
		PreviousSessionID: previous,
		IP:                c.RealIP(),
		UserAgent:         c.Request().UserAgent(),
	})
	observeLogin(start, res, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:      res.Token,
		SessionID:  res.SessionID,
		ExpiresAt:  res.ExpiresAt,
		User:       res.User,
		RedirectTo: res.RedirectTo,
	})
}

// Logout ends the caller's session. The bearer token stops working at once.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), session.ID); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity bound to the caller's session.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  meResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		User:       session.User,
		ExpiresAt:  session.ExpiresAt,
		RedirectTo: domain.LandingRoute(session.User.Role),
	})
}

func observeLogin(start time.Time, res *ports.LoginResult, err error) {
	result, role := "success", ""
	switch {
	case err == nil:
		role = string(res.User.Role)
	case errors.Is(err, domain.ErrInvalidCredentials):
		result = "invalid_credentials"
	default:
		result = "error"
	}
	metrics.LoginAttemptsTotal.WithLabelValues(result, role).Inc()
	metrics.LoginDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
