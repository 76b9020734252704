package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/service"
)

type StationHandler struct {
	Svc *service.StationService
}

func (h *StationHandler) GetStation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_station")

	id, err := parseID(c)
	if err != nil {
		return fail(l, "get_station_failed", err)
	}
	s, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_station_failed", err)
	}
	return ok(c, "", s)
}

// GetStations is the old lookup by supplier key. It still answers but
// points callers at /supplier/:id/station.
func (h *StationHandler) GetStations(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_stations")

	items, err := h.Svc.LegacySearch(ctx, c.QueryParam("supplier_key"), c.QueryParam("filter"))
	if err != nil {
		return fail(l, "get_stations_failed", err)
	}
	count := int64(len(items))
	return c.JSON(http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Message: service.DeprecatedStationMessage,
		Data:    items,
		Count:   &count,
	})
}
