package middlewares

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/infrastructures"
)

type MetricsMiddleware struct {
	metrics *infrastructures.Metrics
}

func NewMetricsMiddleware(metrics *infrastructures.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Observe records request count and latency by matched route. It is
// mounted outside RequestLogger so the response status is final.
func (m *MetricsMiddleware) Observe(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()

	route := c.Route().Path
	m.metrics.RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	m.metrics.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
	return err
}
