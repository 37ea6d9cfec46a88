package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/safatanc/vidtube/pkg/ratelimit"
)

type VideoHandler struct {
	videoService        *services.VideoService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
	config              *infrastructures.AppConfig
}

func NewVideoHandler(videoService *services.VideoService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware, config *infrastructures.AppConfig) *VideoHandler {
	return &VideoHandler{
		videoService:        videoService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
		config:              config,
	}
}

func (h *VideoHandler) RegisterRoutes(router fiber.Router) {
	videoGroup := router.Group("/videos", h.authMiddleware.AuthUser)

	videoGroup.Get("/", h.GetVideos)
	videoGroup.Post("/", h.rateLimitMiddleware.LimitByUser(ratelimit.UploadLimit), h.PublishVideo)
	videoGroup.Patch("/toggle/publish/:videoId", h.TogglePublishStatus)
	videoGroup.Get("/:videoId", h.GetVideo)
	videoGroup.Patch("/:videoId", h.UpdateVideo)
	videoGroup.Delete("/:videoId", h.DeleteVideo)
}

func (h *VideoHandler) GetVideos(c *fiber.Ctx) error {
	filter, err := services.NewVideoListFilter(c.Query("query"), c.Query("sortBy"), c.Query("sortType"), c.Query("userId"))
	if err != nil {
		return err
	}

	page, err := h.videoService.ListVideos(c.UserContext(), filter, pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Videos fetched successfully",
		"No videos found matching your criteria",
		"No videos found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewVideoList(page), message)
}

func (h *VideoHandler) PublishVideo(c *fiber.Ctx) error {
	var req models.VideoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	paths, err := saveUploads(c, h.config.UPLOAD_TEMP_DIR, "videoFile", "thumbnail")
	if err != nil {
		return err
	}

	video, err := h.videoService.PublishVideo(c.UserContext(), middlewares.CurrentUserID(c), &req, paths[0], paths[1])
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusCreated, video.ToResponse(), "Video published successfully")
}

func (h *VideoHandler) GetVideo(c *fiber.Ctx) error {
	video, err := h.videoService.GetVideoByID(c.UserContext(), c.Params("videoId"), middlewares.CurrentUserID(c))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, video.ToResponse(), "Video fetched successfully")
}

func (h *VideoHandler) UpdateVideo(c *fiber.Ctx) error {
	var req models.VideoUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	path, err := saveUpload(c, h.config.UPLOAD_TEMP_DIR, "thumbnail")
	if err != nil {
		return err
	}

	video, changed, err := h.videoService.UpdateVideo(c.UserContext(), middlewares.CurrentUserID(c), c.Params("videoId"), &req, path)
	if err != nil {
		return err
	}

	message := "Video updated successfully"
	if !changed {
		message = "No changes made to the video"
	}
	return pkg.SuccessResponse(c, fiber.StatusOK, video.ToResponse(), message)
}

func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	result, err := h.videoService.DeleteVideo(c.UserContext(), middlewares.CurrentUserID(c), c.Params("videoId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, result, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublishStatus(c *fiber.Ctx) error {
	status, err := h.videoService.TogglePublishStatus(c.UserContext(), middlewares.CurrentUserID(c), c.Params("videoId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, status, "Video publish status toggled successfully")
}
