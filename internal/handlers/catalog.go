package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

// CatalogHandler serves payment types and reimbursement types.
type CatalogHandler[T models.PaymentType | models.ReimbursementType] struct {
	Svc    *service.CatalogService[T]
	Schema filter.Schema
	// BySupplierKey enables the supplier_key list parameter.
	BySupplierKey bool
}

func (h *CatalogHandler[T]) Get(c echo.Context) error {
	ctx := c.Request().Context()
	event := "get_" + h.Svc.Resource()
	l := logging.FromContext(ctx).With("handler", event)

	id, err := parseID(c)
	if err != nil {
		return fail(l, event+"_failed", err)
	}
	item, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, event+"_failed", err)
	}
	return ok(c, "", item)
}

func (h *CatalogHandler[T]) List(c echo.Context) error {
	ctx := c.Request().Context()
	event := "list_" + h.Svc.Resource()
	l := logging.FromContext(ctx).With("handler", event)

	q, err := parseQuery(c, h.Schema)
	if err != nil {
		return fail(l, event+"_failed", err)
	}
	var supplierKey string
	if h.BySupplierKey {
		supplierKey = c.QueryParam("supplier_key")
	}
	count, items, err := h.Svc.List(ctx, q, supplierKey)
	if err != nil {
		return fail(l, event+"_failed", err)
	}
	return list(c, items, count)
}

func (h *CatalogHandler[T]) Create(c echo.Context) error {
	ctx := c.Request().Context()
	event := "create_" + h.Svc.Resource()
	l := logging.FromContext(ctx).With("handler", event)

	var req service.CatalogRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, event+"_failed", err)
	}
	item, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, event+"_failed", err)
	}

	l.Info(event+"_success", "id", h.Svc.ID(item))
	return ok(c, "Successfully created "+h.Svc.Resource(), item)
}

func (h *CatalogHandler[T]) Update(c echo.Context) error {
	ctx := c.Request().Context()
	event := "update_" + h.Svc.Resource()
	l := logging.FromContext(ctx).With("handler", event)

	id, err := parseID(c)
	if err != nil {
		return fail(l, event+"_failed", err)
	}
	var req service.CatalogRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, event+"_failed", err)
	}
	item, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, event+"_failed", err)
	}

	l.Info(event+"_success", "id", id)
	return ok(c, "Successfully updated "+h.Svc.Resource(), item)
}
