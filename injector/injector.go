//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/safatanc/vidtube/internal/app/deliveries"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/services"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/safatanc/vidtube/pkg/ratelimit"
	"gorm.io/gorm"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewMetrics,
	infrastructures.NewCloudinaryUploader,
	wire.Bind(new(services.MediaUploader), new(*infrastructures.CloudinaryUploader)),
	newRateLimiter,
	wire.Bind(new(ratelimit.RateLimiter), new(*ratelimit.RedisRateLimiter)),
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewRedisTokenDenylist,
	wire.Bind(new(services.TokenDenylist), new(*services.RedisTokenDenylist)),
	services.NewTokenService,
	services.NewMediaService,
	services.NewUserService,
	services.NewVideoService,
	services.NewCommentService,
	services.NewLikeService,
	services.NewSubscriptionService,
	services.NewPlaylistService,
	services.NewTweetService,
	services.NewDashboardService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
	middlewares.NewMetricsMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewUserHandler,
	deliveries.NewVideoHandler,
	deliveries.NewCommentHandler,
	deliveries.NewLikeHandler,
	deliveries.NewSubscriptionHandler,
	deliveries.NewPlaylistHandler,
	deliveries.NewTweetHandler,
	deliveries.NewDashboardHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication wires the HTTP application. The cleanup func closes
// the database and redis connections.
func InitializeApplication(config *infrastructures.AppConfig) (*Application, func(), error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return nil, nil, nil
}

// InitializeDatabase opens only the database, for the migrate command.
func InitializeDatabase(config *infrastructures.AppConfig) (*gorm.DB, func(), error) {
	wire.Build(infrastructures.NewDatabase)
	return nil, nil, nil
}
