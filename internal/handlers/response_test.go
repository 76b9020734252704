package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"auth", apperr.ErrTokenExpired, http.StatusUnauthorized, "Signature expired. Please log in again."},
		{"wrapped auth", fmt.Errorf("gate: %w", apperr.ErrInsufficientPrivilege), http.StatusUnauthorized, "requires admin authorization"},
		{"invalid login", apperr.ErrInvalidLogin, http.StatusNotFound, invalidLoginMessage},
		{"not found", apperr.NotFoundError{Resource: "supplier"}, http.StatusNotFound, "No supplier found with that id"},
		{"conflict", apperr.ConflictError{Msg: "User already exists"}, http.StatusConflict, "User already exists"},
		{"malformed filter", apperr.FilterTermMalformedError{Field: "name", Value: "x"}, http.StatusBadRequest, `filter term name="x" must look like <operator>__<value>`},
		{"echo", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, internalMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

func TestClassifyValidationCarriesFields(t *testing.T) {
	fields := map[string]string{"email": "must be a valid email address"}
	status, _, data := classify(apperr.ValidationError{Msg: "invalid request", Fields: fields})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, fields, data)
}

func TestErrorHandlerWritesEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(errors.New("db down"), c)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"failure","message":"Internal server error"}`, rec.Body.String())
}

func TestErrorHandlerHeadHasNoBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ErrorHandler(apperr.NotFoundError{Resource: "station"}, c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestListKeepsZeroCount(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, list(c, []string{}, 0))
	assert.JSONEq(t, `{"status":"success","data":[],"count":0}`, rec.Body.String())
}

func TestParseIDRejectsZero(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("0")

	_, err := parseID(c)
	var verr apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}
