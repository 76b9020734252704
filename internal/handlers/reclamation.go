package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type ReclamationHandler struct {
	Svc *service.ReclamationService
}

func (h *ReclamationHandler) GetReclamation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_reclamation")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_reclamation_failed", err)
	}
	caller, err := identity(c)
	if err != nil {
		return fail(l, "get_reclamation_failed", err)
	}
	rec, err := h.Svc.Get(ctx, caller, id)
	if err != nil {
		return fail(l, "get_reclamation_failed", err)
	}
	return ok(c, "", rec)
}

func (h *ReclamationHandler) GetReclamations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_reclamations")

	caller, err := identity(c)
	if err != nil {
		return fail(l, "get_reclamations_failed", err)
	}
	q, err := parseQuery(c, repo.ReclamationSchema)
	if err != nil {
		return fail(l, "get_reclamations_failed", err)
	}
	count, items, err := h.Svc.List(ctx, caller, 0, q)
	if err != nil {
		return fail(l, "get_reclamations_failed", err)
	}
	return list(c, items, count)
}

func (h *ReclamationHandler) UpdateReclamation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_reclamation")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "update_reclamation_failed", err)
	}
	var req service.AdjudicateRequest
	if err := bindBody(c, &req); err != nil {
		return fail(l, "update_reclamation_failed", err)
	}
	rec, err := h.Svc.Adjudicate(ctx, id, req)
	if err != nil {
		return fail(l, "update_reclamation_failed", err)
	}

	l.Info("update_reclamation_success", "reclamation_id", rec.ID, "approved", rec.Approved)
	return ok(c, "Successfully updated reclamation", rec)
}
