package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware. A missing
// session means the route was mounted without Auth, which is a wiring bug;
// reject with 401 rather than serve anonymous data.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get("session").(*domain.Session)
	if session == nil || session.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
