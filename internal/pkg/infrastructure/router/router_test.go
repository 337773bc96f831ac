package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestThatAllowedOriginsGetCORSHeaders(t *testing.T) {
	is := is.New(t)

	r := New("map-service", []string{"https://hackforla.org"})
	r.Post("/api/v0/map/pins", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v0/map/pins", nil)
	req.Header.Set("Origin", "https://hackforla.org")
	res := httptest.NewRecorder()

	r.ServeHTTP(res, req)

	is.Equal(res.Code, http.StatusOK)
	is.Equal(res.Header().Get("Access-Control-Allow-Origin"), "https://hackforla.org")
}

func TestThatPanicsAreRecovered(t *testing.T) {
	is := is.New(t)

	r := New("map-service", nil)
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/boom", nil))

	is.Equal(res.Code, http.StatusInternalServerError)
}
