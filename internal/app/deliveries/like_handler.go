package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

type LikeHandler struct {
	likeService    *services.LikeService
	authMiddleware *middlewares.AuthMiddleware
}

func NewLikeHandler(likeService *services.LikeService, authMiddleware *middlewares.AuthMiddleware) *LikeHandler {
	return &LikeHandler{
		likeService:    likeService,
		authMiddleware: authMiddleware,
	}
}

func (h *LikeHandler) RegisterRoutes(router fiber.Router) {
	likeGroup := router.Group("/likes", h.authMiddleware.AuthUser)

	likeGroup.Post("/toggle/v/:videoId", h.toggle(models.LikeTargetVideo, "videoId"))
	likeGroup.Post("/toggle/c/:commentId", h.toggle(models.LikeTargetComment, "commentId"))
	likeGroup.Post("/toggle/t/:tweetId", h.toggle(models.LikeTargetTweet, "tweetId"))
	likeGroup.Get("/videos", h.GetLikedVideos)
}

// toggle answers 201 when the like was created and 200 when it was removed
// or already present.
func (h *LikeHandler) toggle(target models.LikeTarget, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, created, err := h.likeService.ToggleLike(c.UserContext(), middlewares.CurrentUserID(c), target, c.Params(param))
		if err != nil {
			return err
		}

		if created {
			return pkg.SuccessResponse(c, fiber.StatusCreated, result, target.Title()+" liked successfully")
		}
		if result.Liked {
			return pkg.SuccessResponse(c, fiber.StatusOK, result, target.Title()+" already liked")
		}
		return pkg.SuccessResponse(c, fiber.StatusOK, result, target.Title()+" unliked successfully")
	}
}

func (h *LikeHandler) GetLikedVideos(c *fiber.Ctx) error {
	page, err := h.likeService.ListLikedVideos(c.UserContext(), middlewares.CurrentUserID(c), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Liked videos retrieved successfully",
		"You haven't liked any videos yet",
		"No liked videos found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewLikedVideoList(page), message)
}
