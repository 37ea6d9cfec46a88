package deliveries

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"gorm.io/gorm"
)

type HealthStatus struct {
	Service  string `json:"service"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

type HealthHandler struct {
	db      *gorm.DB
	redis   *redis.Client
	metrics *infrastructures.Metrics
}

func NewHealthHandler(db *gorm.DB, redis *redis.Client, metrics *infrastructures.Metrics) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, metrics: metrics}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.GetHealth)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})))
}

func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := HealthStatus{Service: "vidtube", Database: "ok", Redis: "ok"}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status.Database = "unavailable"
		healthy = false
	}
	if h.redis != nil && h.redis.Ping(ctx).Err() != nil {
		status.Redis = "unavailable"
		healthy = false
	}

	if !healthy {
		return errors.NewAppError(errors.KindInternal, "Service unhealthy", "database="+status.Database, "redis="+status.Redis)
	}
	return pkg.SuccessResponse(c, fiber.StatusOK, status, "OK")
}
