package handlers

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/db"
	"github.com/Skotchmaster/travel_compensation/internal/logging"
)

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Name   string `json:"name"`
}

// ListRoutes lists every registered route ordered by path, then method.
func ListRoutes(c echo.Context) error {
	routes := c.Echo().Routes()
	out := make([]routeInfo, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeInfo{Method: r.Method, Path: r.Path, Name: r.Name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return list(c, out, int64(len(out)))
}

func Live(c echo.Context) error { return c.NoContent(http.StatusOK) }

// Ready answers 503 while the database does not answer a ping.
func Ready(gdb *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx, gdb); err != nil {
			logging.FromContext(ctx).Warn("ready_check_failed", "status", http.StatusServiceUnavailable, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}
