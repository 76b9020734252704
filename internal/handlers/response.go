package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	invalidLoginMessage = "Invalid password and/or username and account."
	internalMessage     = "Internal server error"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int64 `json:"count,omitempty"`
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func list(c echo.Context, data any, count int64) error {
	return c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Data: data, Count: &count})
}

// ErrorHandler renders every error returned by a handler or middleware as
// a failure envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message, data := classify(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request_failed", "status", status, "error", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, Envelope{Status: StatusFailure, Message: message, Data: data})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response_failed", "error", werr)
	}
}

func classify(err error) (int, string, any) {
	var (
		authErr   *apperr.AuthError
		notFound  apperr.NotFoundError
		conflict  apperr.ConflictError
		invalid   apperr.ValidationError
		malformed apperr.FilterTermMalformedError
		httpErr   *echo.HTTPError
	)
	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, authErr.Msg, nil
	case errors.Is(err, apperr.ErrInvalidLogin):
		return http.StatusNotFound, invalidLoginMessage, nil
	case errors.As(err, &malformed):
		return http.StatusBadRequest, malformed.Error(), nil
	case errors.As(err, &invalid):
		if len(invalid.Fields) > 0 {
			return http.StatusUnprocessableEntity, invalid.Error(), invalid.Fields
		}
		return http.StatusUnprocessableEntity, invalid.Error(), nil
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error(), nil
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Error(), nil
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if s, isString := httpErr.Message.(string); isString {
			msg = s
		}
		return httpErr.Code, msg, nil
	default:
		return http.StatusInternalServerError, internalMessage, nil
	}
}

// fail logs a handler failure at a level matching its status and returns
// err for ErrorHandler.
func fail(l *slog.Logger, event string, err error) error {
	status, message, _ := classify(err)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", message)
	}
	return err
}

func parseID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.ValidationError{Field: "id", Msg: "must be a positive integer", Err: err}
	}
	return uint(id), nil
}

func parseIntParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.ValidationError{Field: name, Msg: "must be a non-negative integer", Err: err}
	}
	return n, nil
}

// bindBody decodes the JSON body only, so query parameters never leak into
// request structs.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return apperr.ValidationError{Msg: "request body is not valid JSON", Err: err}
	}
	return nil
}

func parseQuery(c echo.Context, s filter.Schema) (filter.Query, error) {
	return filter.Parse(s, c.QueryParams())
}

// identity returns the caller attached by the auth gate.
func identity(c echo.Context) (tokens.Identity, error) {
	id, found := tokens.FromContext(c.Request().Context())
	if !found {
		return tokens.Identity{}, fmt.Errorf("no identity in request context for %s", c.Path())
	}
	return id, nil
}
