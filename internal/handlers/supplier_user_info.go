package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type SupplierUserInfoHandler struct {
	Svc *service.SupplierUserInfoService
}

func (h *SupplierUserInfoHandler) GetSupplierUserInfo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_supplier_user_info")

	caller, err := identity(c)
	if err != nil {
		return fail(l, "get_supplier_user_info_failed", err)
	}
	items, err := h.Svc.List(ctx, caller)
	if err != nil {
		return fail(l, "get_supplier_user_info_failed", err)
	}
	return list(c, items, int64(len(items)))
}

func (h *SupplierUserInfoHandler) SaveSupplierUserInfo(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "save_supplier_user_info")

	caller, err := identity(c)
	if err != nil {
		return fail(l, "save_supplier_user_info_failed", err)
	}
	var req service.SupplierUserInfoRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "save_supplier_user_info_failed", err)
	}
	info, err := h.Svc.Save(ctx, caller, req)
	if err != nil {
		return fail(l, "save_supplier_user_info_failed", err)
	}

	l.Info("save_supplier_user_info_success", "supplier_id", info.SupplierID)
	return ok(c, "Successfully updated supplier_user_info", info)
}
