package skanetrafiken

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQueries(t *testing.T) {
	q := DefaultQueries()
	require.Len(t, q, 29*29)
	require.Equal(t, "aa", q[0])
	require.Equal(t, "öö", q[len(q)-1])
}

func TestStopsFiltersAndDedupes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "search", r.URL.Query().Get("action"))
		switch r.URL.Query().Get("q") {
		case "lu":
			io.WriteString(w, `{"StartEndPoint":[
				{"Id":80000,"Name":"Lund Central","Type":"STOP_AREA"},
				{"Id":1,"Name":"Lundagatan 1","Type":"ADDRESS"}]}`)
		case "ma":
			io.WriteString(w, `{"StartEndPoint":[
				{"Id":"80000","Name":"Lund Central","Type":"STOP_AREA"},
				{"Id":80100,"Name":"Malmö C","Type":"STOP_AREA"}]}`)
		case "xx":
			w.WriteHeader(http.StatusBadGateway)
		default:
			io.WriteString(w, `{}`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/handlers/LocationSearch.ashx", WithQueries("lu", "xx", "ma", "zz"))
	stops, err := c.Stops(t.Context())
	require.NoError(t, err)
	require.Equal(t, []Stop{
		{ID: "80000", Name: "Lund Central"},
		{ID: "80100", Name: "Malmö C"},
	}, stops)
}
