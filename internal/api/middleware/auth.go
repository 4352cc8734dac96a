package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-api/internal/core/domain"
)

// SessionLookup resolves a session id to the live session.
type SessionLookup interface {
	Session(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Auth validates the bearer JWT, checks that its session is still open and
// injects the session into the context.
func Auth(jwtSecret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authenticate(c, jwtSecret, sessions); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalAuth behaves like Auth when a valid token is present and lets the
// request through untouched otherwise.
func OptionalAuth(jwtSecret string, sessions SessionLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) != "" {
				if err := authenticate(c, jwtSecret, sessions); err != nil && !isUnauthorized(err) {
					return err
				}
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, jwtSecret string, sessions SessionLookup) error {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	sid, _ := claims["sid"].(string)
	session, err := sessions.Session(c.Request().Context(), sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}
		return err
	}
	if sub, _ := claims["sub"].(string); sub != session.User.ID {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	c.Set("session", session)
	c.Set("session_id", session.ID)
	c.Set("user_id", session.User.ID)
	c.Set("role", string(session.User.Role))

	return nil
}

func isUnauthorized(err error) bool {
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusUnauthorized
}
