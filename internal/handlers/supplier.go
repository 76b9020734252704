package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type SupplierHandler struct {
	Svc          *service.SupplierService
	Reclamations *service.ReclamationService
	Stations     *service.StationService
}

func (h *SupplierHandler) GetSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_supplier")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_supplier_failed", err)
	}
	s, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_supplier_failed", err)
	}
	return ok(c, "", s)
}

func (h *SupplierHandler) GetSuppliers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_suppliers")

	q, err := parseQuery(c, repo.SupplierSchema)
	if err != nil {
		return fail(l, "get_suppliers_failed", err)
	}
	count, items, err := h.Svc.List(ctx, q)
	if err != nil {
		return fail(l, "get_suppliers_failed", err)
	}
	return list(c, items, count)
}

func (h *SupplierHandler) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_supplier")

	var req service.CatalogRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "create_supplier_failed", err)
	}
	s, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_supplier_failed", err)
	}

	l.Info("create_supplier_success", "supplier_id", s.ID)
	return ok(c, "Successfully created supplier", s)
}

func (h *SupplierHandler) UpdateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_supplier")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "update_supplier_failed", err)
	}
	var req service.CatalogRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "update_supplier_failed", err)
	}
	s, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_supplier_failed", err)
	}

	l.Info("update_supplier_success", "supplier_id", s.ID)
	return ok(c, "Successfully updated supplier", s)
}

func (h *SupplierHandler) DeleteSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete_supplier")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "delete_supplier_failed", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_supplier_failed", err)
	}

	l.Info("delete_supplier_success", "supplier_id", id)
	return ok(c, "Successfully deleted supplier", nil)
}

func (h *SupplierHandler) GetReclamations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_supplier_reclamations")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_supplier_reclamations_failed", err)
	}
	caller, err := identity(c)
	if err != nil {
		return fail(l, "get_supplier_reclamations_failed", err)
	}
	q, err := parseQuery(c, repo.ReclamationSchema)
	if err != nil {
		return fail(l, "get_supplier_reclamations_failed", err)
	}
	count, items, err := h.Reclamations.List(ctx, caller, id, q)
	if err != nil {
		return fail(l, "get_supplier_reclamations_failed", err)
	}
	return list(c, items, count)
}

func (h *SupplierHandler) CreateReclamation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_reclamation")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "create_reclamation_failed", err)
	}
	caller, err := identity(c)
	if err != nil {
		return fail(l, "create_reclamation_failed", err)
	}
	var req service.ReclamationRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "create_reclamation_failed", err)
	}
	rec, err := h.Reclamations.Create(ctx, caller, id, req)
	if err != nil {
		return fail(l, "create_reclamation_failed", err)
	}

	l.Info("create_reclamation_success", "reclamation_id", rec.ID)
	return ok(c, "Successfully created reclamation", rec)
}

func (h *SupplierHandler) GetPaymentTypes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_supplier_payment_types")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_supplier_payment_types_failed", err)
	}
	items, err := h.Svc.PaymentTypes(ctx, id)
	if err != nil {
		return fail(l, "get_supplier_payment_types_failed", err)
	}
	return list(c, items, int64(len(items)))
}

func (h *SupplierHandler) GetReimbursementTypes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_supplier_reimbursement_types")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_supplier_reimbursement_types_failed", err)
	}
	items, err := h.Svc.ReimbursementTypes(ctx, id)
	if err != nil {
		return fail(l, "get_supplier_reimbursement_types_failed", err)
	}
	return list(c, items, int64(len(items)))
}

// Link returns a handler that connects or disconnects a catalog entry.
func (h *SupplierHandler) Link(kind service.LinkKind, connect bool) echo.HandlerFunc {
	verb, done := "disconnect", "disconnected"
	if connect {
		verb, done = "connect", "connected"
	}
	event := verb + "_" + kind.String()

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("handler", event)

		id, err := parseID(c)
		if err != nil {
			return fail(l, event+"_failed", err)
		}
		var req service.LinkRequest
		if err := bindBody(c, &req); err != nil {
			return fail(l, event+"_failed", err)
		}

		if connect {
			err = h.Svc.Connect(ctx, kind, id, req)
		} else {
			err = h.Svc.Disconnect(ctx, kind, id, req)
		}
		if err != nil {
			return fail(l, event+"_failed", err)
		}

		l.Info(event+"_success", "supplier_id", id, "type_id", req.ID)
		return ok(c, "Successfully "+done+" "+kind.String(), nil)
	}
}

func (h *SupplierHandler) GetStations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_supplier_stations")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_supplier_stations_failed", err)
	}
	q, err := parseQuery(c, repo.StationSchema)
	if err != nil {
		return fail(l, "get_supplier_stations_failed", err)
	}
	count, items, err := h.Stations.ListBySupplier(ctx, id, c.QueryParam("filter"), q)
	if err != nil {
		return fail(l, "get_supplier_stations_failed", err)
	}
	return list(c, items, count)
}

func (h *SupplierHandler) SearchStations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search_stations")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "search_stations_failed", err)
	}
	from, err := parseIntParam(c, "from", 0)
	if err != nil {
		return fail(l, "search_stations_failed", err)
	}
	size, err := parseIntParam(c, "size", 10)
	if err != nil {
		return fail(l, "search_stations_failed", err)
	}

	total, docs, err := h.Stations.Search(ctx, id, c.QueryParam("q"), from, size)
	if err != nil {
		return fail(l, "search_stations_failed", err)
	}
	return list(c, docs, total)
}
