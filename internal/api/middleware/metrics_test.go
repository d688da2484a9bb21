package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type observed struct {
	method string
	path   string
	status int
}

type httpRecorder struct{ calls []observed }

func (h *httpRecorder) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	h.calls = append(h.calls, observed{method: method, path: path, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	rec := &httpRecorder{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(rec))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/users/me/bookings", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)

	for _, path := range []string{"/api/v1/bookings/b-1", "/api/v1/bookings/b-2", "/api/v1/users/me/bookings"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, []observed{
		{method: http.MethodGet, path: "/api/v1/bookings/{bookingId}", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/v1/bookings/{bookingId}", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/v1/users/me/bookings", status: http.StatusOK},
	}, rec.calls)
}
