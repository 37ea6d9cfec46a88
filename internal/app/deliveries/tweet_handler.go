package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

type TweetHandler struct {
	tweetService   *services.TweetService
	authMiddleware *middlewares.AuthMiddleware
}

func NewTweetHandler(tweetService *services.TweetService, authMiddleware *middlewares.AuthMiddleware) *TweetHandler {
	return &TweetHandler{
		tweetService:   tweetService,
		authMiddleware: authMiddleware,
	}
}

func (h *TweetHandler) RegisterRoutes(router fiber.Router) {
	tweetGroup := router.Group("/tweets", h.authMiddleware.AuthUser)

	tweetGroup.Post("/", h.CreateTweet)
	tweetGroup.Get("/user/:userId", h.GetUserTweets)
	tweetGroup.Patch("/:tweetId", h.UpdateTweet)
	tweetGroup.Delete("/:tweetId", h.DeleteTweet)
}

func (h *TweetHandler) CreateTweet(c *fiber.Ctx) error {
	var req models.TweetRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	tweet, err := h.tweetService.CreateTweet(c.UserContext(), middlewares.CurrentUserID(c), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusCreated, tweet.ToResponse(), "Tweet created successfully")
}

func (h *TweetHandler) GetUserTweets(c *fiber.Ctx) error {
	page, err := h.tweetService.ListUserTweets(c.UserContext(), c.Params("userId"), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"User tweets fetched successfully",
		"This user has not posted any tweets yet",
		"No tweets found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewTweetList(page), message)
}

func (h *TweetHandler) UpdateTweet(c *fiber.Ctx) error {
	var req models.TweetRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	tweet, err := h.tweetService.UpdateTweet(c.UserContext(), middlewares.CurrentUserID(c), c.Params("tweetId"), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, tweet.ToResponse(), "Tweet updated successfully")
}

func (h *TweetHandler) DeleteTweet(c *fiber.Ctx) error {
	result, err := h.tweetService.DeleteTweet(c.UserContext(), middlewares.CurrentUserID(c), c.Params("tweetId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, result, "Tweet deleted successfully")
}
