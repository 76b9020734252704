package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_user")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_user_failed", err)
	}
	u, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_user_failed", err)
	}
	return ok(c, "", u)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_users")

	q, err := parseQuery(c, repo.UserSchema)
	if err != nil {
		return fail(l, "get_users_failed", err)
	}
	count, items, err := h.Svc.List(ctx, q)
	if err != nil {
		return fail(l, "get_users_failed", err)
	}
	return list(c, items, count)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_user")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "update_user_failed", err)
	}
	caller, err := identity(c)
	if err != nil {
		return fail(l, "update_user_failed", err)
	}
	var req service.UpdateUserRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "update_user_failed", err)
	}

	u, err := h.Svc.Update(ctx, caller, id, req)
	if err != nil {
		return fail(l, "update_user_failed", err)
	}

	l.Info("update_user_success", "user_id", u.ID)
	return ok(c, "Successfully updated user", u)
}
