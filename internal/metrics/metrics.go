// Package metrics pre-defines the HTTP metrics the dashboard scrapes and the
// echo middleware that records them.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keymaxprot/backend/internal/httpx"
)

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "keymax",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "keymax",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "keymax",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		requestDuration,
		requestTotal,
		requestInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Middleware records duration/count/in-flight for every request, labelled by
// route path rather than raw URL to keep cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestInFlight.Inc()
			defer requestInFlight.Dec()

			start := time.Now()
			err := next(c)
			// The central error handler has not run yet, so the response
			// status still reads 200 for failed requests. Resolve the label
			// from the error the same way the handler will.
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = httpx.StatusOf(err)
				}
			}

			labels := []string{c.Request().Method, c.Path(), strconv.Itoa(status)}
			requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			requestTotal.WithLabelValues(labels...).Inc()
			return err
		}
	}
}

// Handler serves the scrape endpoint.
func Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
