package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/safatanc/vidtube/injector"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := infrastructures.Config

			app, cleanup, err := injector.InitializeApplication(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			router := newRouter(cfg, app)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logrus.Infof("server listening on :%s", cfg.PORT)
				errCh <- router.Listen(":" + cfg.PORT)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logrus.Info("shutting down server")
				return router.ShutdownWithTimeout(10 * time.Second)
			}
		},
	}
}

func newRouter(cfg *infrastructures.AppConfig, app *injector.Application) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      "vidtube",
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.BODY_LIMIT_MB * 1024 * 1024,
		ErrorHandler: pkg.NewErrorHandler(cfg.IsProduction()),
	})

	router.Use(requestid.New())
	router.Use(app.MetricsMiddleware.Observe)
	router.Use(middlewares.RequestLogger())
	router.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS_ORIGIN,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: cfg.CORS_ORIGIN != "*",
		ExposeHeaders:    "Content-Length, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:           300,
	}))

	app.RegisterRoutes(router)

	return router
}
