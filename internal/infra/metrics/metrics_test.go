package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveOnce(t *testing.T, path string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(Middleware())
	e.GET(path, handler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func counterValue(method, path, status string) float64 {
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, path, status))
}

func TestMiddleware_RecordsHandlerStatus(t *testing.T) {
	rec := serveOnce(t, "/metrics-ok", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, float64(1), counterValue(http.MethodGet, "/metrics-ok", "204"))
	assert.Zero(t, counterValue(http.MethodGet, "/metrics-ok", "200"))
}

func TestMiddleware_RecordsHTTPErrorStatus(t *testing.T) {
	rec := serveOnce(t, "/metrics-missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The handler returned an error; the status must come from the error,
	// not from the yet-unwritten response.
	assert.Equal(t, float64(1), counterValue(http.MethodGet, "/metrics-missing", "404"))
	assert.Zero(t, counterValue(http.MethodGet, "/metrics-missing", "200"))
}

func TestMiddleware_RecordsAppErrorStatus(t *testing.T) {
	serveOnce(t, "/metrics-conflict", func(c echo.Context) error {
		return domainerrors.ErrDuplicateEmail
	})

	assert.Equal(t, float64(1), counterValue(http.MethodGet, "/metrics-conflict", "409"))
	assert.Zero(t, counterValue(http.MethodGet, "/metrics-conflict", "200"))
}

func TestMiddleware_RecordsPlainErrorAsInternal(t *testing.T) {
	serveOnce(t, "/metrics-broken", func(c echo.Context) error {
		return errors.New("backend unavailable")
	})

	assert.Equal(t, float64(1), counterValue(http.MethodGet, "/metrics-broken", "500"))
}
