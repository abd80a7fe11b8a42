// Package metrics exposes Prometheus HTTP metrics for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Middleware collects request count, duration and in-flight metrics. Paths are
// labeled by route pattern, not raw URL, to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			// Echo runs the HTTPErrorHandler only after the middleware chain
			// unwinds, so on an error return the response status is not yet
			// written. Derive it from the error instead.
			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = statusFromError(err)
			}

			routePattern := c.Path()
			if routePattern == "" {
				routePattern = "unknown"
			}
			duration := time.Since(start).Seconds()
			statusLabel := strconv.Itoa(status)

			httpRequestsTotal.WithLabelValues(c.Request().Method, routePattern, statusLabel).Inc()
			httpRequestDuration.WithLabelValues(c.Request().Method, routePattern, statusLabel).Observe(duration)

			return err
		}
	}
}

// statusFromError mirrors the mapping the error handler applies.
func statusFromError(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}

// Handler serves the Prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
