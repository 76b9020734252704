package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

type Verifier interface {
	Verify(ctx context.Context, raw string) (tokens.Identity, error)
}

// FailureObserver is told the reason of every rejected request.
type FailureObserver interface {
	AuthFailure(reason string)
}

// Gate guards handlers with the bearer token from the Authorization header.
type Gate struct {
	Verifier Verifier
	Observer FailureObserver
}

func (g *Gate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := g.authenticate(c); err != nil {
			return g.reject(c, err)
		}
		return next(c)
	}
}

// RequireAdmin runs the login checks first, so a bad token is reported
// before missing privilege.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := g.authenticate(c)
		if err != nil {
			return g.reject(c, err)
		}
		if !id.IsAdmin {
			return g.reject(c, apperr.ErrInsufficientPrivilege)
		}
		return next(c)
	}
}

func (g *Gate) authenticate(c echo.Context) (tokens.Identity, error) {
	raw, err := BearerToken(c.Request())
	if err != nil {
		return tokens.Identity{}, err
	}

	ctx := c.Request().Context()
	id, err := g.Verifier.Verify(ctx, raw)
	if err != nil {
		return tokens.Identity{}, err
	}

	ctx = tokens.IntoContext(ctx, id)
	ctx = logging.IntoContext(ctx, logging.FromContext(ctx).With("user_id", id.SubjectID))
	c.SetRequest(c.Request().WithContext(ctx))
	return id, nil
}

func (g *Gate) reject(c echo.Context, err error) error {
	l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

	var ae *apperr.AuthError
	if !errors.As(err, &ae) {
		l.Error("auth_check_failed", "status", http.StatusInternalServerError, "error", err)
		return err
	}
	if g.Observer != nil {
		g.Observer.AuthFailure(ae.Reason)
	}
	l.Warn("auth_rejected", "status", http.StatusUnauthorized, "reason", ae.Reason)
	return ae
}

// BearerToken extracts the token from "<scheme> <token>". The header must
// split on a single space into exactly two non-empty parts.
func BearerToken(r *http.Request) (string, error) {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", apperr.ErrMissingCredential
	}
	parts := strings.Split(h, " ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", apperr.ErrMalformedCredential
	}
	return parts[1], nil
}
