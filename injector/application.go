package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/safatanc/vidtube/internal/app/deliveries"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/pkg/ratelimit"
)

// Application represents the main application container for vidtube
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	UserHandler         *deliveries.UserHandler
	VideoHandler        *deliveries.VideoHandler
	CommentHandler      *deliveries.CommentHandler
	LikeHandler         *deliveries.LikeHandler
	SubscriptionHandler *deliveries.SubscriptionHandler
	PlaylistHandler     *deliveries.PlaylistHandler
	TweetHandler        *deliveries.TweetHandler
	DashboardHandler    *deliveries.DashboardHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
	MetricsMiddleware   *middlewares.MetricsMiddleware
}

// RegisterRoutes mounts everything under /api/v1. Ops endpoints are
// registered ahead of the public rate limit.
func (app *Application) RegisterRoutes(router fiber.Router) {
	api := router.Group("/api/v1")
	app.HealthHandler.RegisterRoutes(api)

	api.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.PublicAPILimit))

	app.UserHandler.RegisterRoutes(api)
	app.VideoHandler.RegisterRoutes(api)
	app.CommentHandler.RegisterRoutes(api)
	app.LikeHandler.RegisterRoutes(api)
	app.SubscriptionHandler.RegisterRoutes(api)
	app.PlaylistHandler.RegisterRoutes(api)
	app.TweetHandler.RegisterRoutes(api)
	app.DashboardHandler.RegisterRoutes(api)
}

func newRateLimiter(client *redis.Client) *ratelimit.RedisRateLimiter {
	return ratelimit.NewRedisRateLimiter(client, "vidtube")
}
