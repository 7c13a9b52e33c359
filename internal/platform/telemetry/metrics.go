// Package telemetry exposes Prometheus metrics for the inventory service.
package telemetry

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters the allocation engine and HTTP layer record.
type Metrics struct {
	registry *prometheus.Registry

	AllocationsTotal  *prometheus.CounterVec
	QuantityAssigned  prometheus.Counter
	HTTPRequestsTotal *prometheus.CounterVec
}

// New builds a Metrics set backed by its own registry, keeping test
// instances independent of the default global registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AllocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_allocations_total",
			Help: "Allocation attempts by outcome (ok, invalid_input, not_found, insufficient_stock, store_error).",
		}, []string{"outcome"}),
		QuantityAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "inventory_quantity_assigned_total",
			Help: "Total units moved from central stock to facilities.",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
	}
}

// RecordAllocation counts one allocation attempt and, on success, the units
// assigned.
func (m *Metrics) RecordAllocation(outcome string, quantity int64) {
	m.AllocationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" && quantity > 0 {
		m.QuantityAssigned.Add(float64(quantity))
	}
}

// Middleware counts every request by method and response status.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// Handler returns the /metrics endpoint for this registry.
func (m *Metrics) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return echo.WrapHandler(h)
}
