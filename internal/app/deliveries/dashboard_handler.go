package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	authMiddleware   *middlewares.AuthMiddleware
}

func NewDashboardHandler(dashboardService *services.DashboardService, authMiddleware *middlewares.AuthMiddleware) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		authMiddleware:   authMiddleware,
	}
}

func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	dashboardGroup := router.Group("/dashboard", h.authMiddleware.AuthUser)

	dashboardGroup.Get("/stats", h.GetChannelStats)
	dashboardGroup.Get("/videos", h.GetChannelVideos)
}

func (h *DashboardHandler) GetChannelStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetChannelStats(c.UserContext(), middlewares.CurrentUserID(c))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *DashboardHandler) GetChannelVideos(c *fiber.Ctx) error {
	page, err := h.dashboardService.ListChannelVideos(c.UserContext(), middlewares.CurrentUserID(c), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Channel videos fetched successfully",
		"This channel has no videos yet",
		"No videos found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewChannelVideoList(page), message)
}
