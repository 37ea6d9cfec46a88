package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
	authMiddleware      *middlewares.AuthMiddleware
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService, authMiddleware *middlewares.AuthMiddleware) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		authMiddleware:      authMiddleware,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(router fiber.Router) {
	subscriptionGroup := router.Group("/subscriptions", h.authMiddleware.AuthUser)

	subscriptionGroup.Post("/c/:channelId", h.ToggleSubscription)
	subscriptionGroup.Get("/c/:channelId", h.GetChannelSubscribers)
	subscriptionGroup.Get("/u/:subscriberId", h.GetSubscribedChannels)
}

func (h *SubscriptionHandler) ToggleSubscription(c *fiber.Ctx) error {
	result, created, err := h.subscriptionService.ToggleSubscription(c.UserContext(), middlewares.CurrentUserID(c), c.Params("channelId"))
	if err != nil {
		return err
	}

	if created {
		return pkg.SuccessResponse(c, fiber.StatusCreated, result, "Subscribed successfully")
	}
	if result.Subscribed {
		return pkg.SuccessResponse(c, fiber.StatusOK, result, "Already subscribed")
	}
	return pkg.SuccessResponse(c, fiber.StatusOK, result, "Unsubscribed successfully")
}

func (h *SubscriptionHandler) GetChannelSubscribers(c *fiber.Ctx) error {
	page, err := h.subscriptionService.ListSubscribers(c.UserContext(), c.Params("channelId"), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Subscribers fetched successfully",
		"This channel has no subscribers yet",
		"No subscribers found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewSubscriberList(page), message)
}

func (h *SubscriptionHandler) GetSubscribedChannels(c *fiber.Ctx) error {
	page, err := h.subscriptionService.ListSubscribedChannels(c.UserContext(), c.Params("subscriberId"), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Subscribed channels fetched successfully",
		"This user has not subscribed to any channel yet",
		"No subscribed channels found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewSubscribedChannelList(page), message)
}
