// Package metrics counts http requests per route for the prometheus registry.
package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests     *prometheus.CounterVec   //nolint:gochecknoglobals
	duration     *prometheus.HistogramVec //nolint:gochecknoglobals
	registerOnce sync.Once                //nolint:gochecknoglobals
)

func register(service string) {
	registerOnce.Do(func() {
		labels := prometheus.Labels{"service": service}

		requests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Number of http requests, by method, route and status code.",
				ConstLabels: labels,
			},
			[]string{"method", "route", "status"},
		)

		duration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Latency of http requests, by method and route.",
				ConstLabels: labels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
	})
}

// New returns the middleware. Requests are labelled with the matched route pattern, not
// the raw path, so ids do not create new series.
func New(service string) fiber.Handler {
	register(service)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError

			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		duration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}
