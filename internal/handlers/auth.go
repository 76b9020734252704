package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/middleware/auth"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

type loginResponse struct {
	*models.User
	AuthToken string `json:"auth_token"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "register")

	var req service.RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "register_failed", err)
	}

	u, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_failed", err)
	}

	l.Info("register_success", "user_id", u.ID)
	return ok(c, "", u)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "login")

	var req service.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "login_failed", err)
	}

	u, token, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	l.Info("login_success", "user_id", u.ID)
	return ok(c, "", loginResponse{User: u, AuthToken: token})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "logout")

	id, err := identity(c)
	if err != nil {
		return fail(l, "logout_failed", err)
	}
	raw, err := auth.BearerToken(c.Request())
	if err != nil {
		return fail(l, "logout_failed", err)
	}

	if err := h.Svc.Logout(ctx, id, raw); err != nil {
		return fail(l, "logout_failed", err)
	}

	l.Info("logout_success")
	return ok(c, "Successfully logged out.", nil)
}

func (h *AuthHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_status")

	id, err := identity(c)
	if err != nil {
		return fail(l, "auth_status_failed", err)
	}
	u, err := h.Svc.Status(ctx, id)
	if err != nil {
		return fail(l, "auth_status_failed", err)
	}
	return ok(c, "", u)
}
