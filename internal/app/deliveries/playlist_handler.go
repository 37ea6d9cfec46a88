package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewPlaylistHandler(playlistService *services.PlaylistService, authMiddleware *middlewares.AuthMiddleware) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		authMiddleware:  authMiddleware,
	}
}

func (h *PlaylistHandler) RegisterRoutes(router fiber.Router) {
	playlistGroup := router.Group("/playlists", h.authMiddleware.AuthUser)

	playlistGroup.Post("/", h.CreatePlaylist)
	playlistGroup.Get("/user/:userId", h.GetUserPlaylists)
	playlistGroup.Get("/:playlistId", h.GetPlaylist)
	playlistGroup.Patch("/:playlistId", h.UpdatePlaylist)
	playlistGroup.Delete("/:playlistId", h.DeletePlaylist)
	playlistGroup.Patch("/:playlistId/add/:videoId", h.AddVideoToPlaylist)
	playlistGroup.Patch("/:playlistId/remove/:videoId", h.RemoveVideoFromPlaylist)
}

func (h *PlaylistHandler) CreatePlaylist(c *fiber.Ctx) error {
	var req models.PlaylistCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	playlist, err := h.playlistService.CreatePlaylist(c.UserContext(), middlewares.CurrentUserID(c), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusCreated, playlist.ToResponse(), "Playlist created successfully")
}

func (h *PlaylistHandler) GetUserPlaylists(c *fiber.Ctx) error {
	page, err := h.playlistService.ListUserPlaylists(c.UserContext(), c.Params("userId"), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"User playlists fetched successfully",
		"This user has not created any playlists yet",
		"No playlists found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewPlaylistList(page), message)
}

func (h *PlaylistHandler) GetPlaylist(c *fiber.Ctx) error {
	playlist, videos, err := h.playlistService.GetPlaylist(c.UserContext(), c.Params("playlistId"), pkg.ParsePageRequest(c, pkg.MaxPlaylistVideoLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(videos.State,
		"Playlist fetched successfully",
		"Playlist fetched successfully, it has no videos yet",
		"Playlist fetched successfully, no videos found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewPlaylistDetail(playlist, videos), message)
}

func (h *PlaylistHandler) UpdatePlaylist(c *fiber.Ctx) error {
	var req models.PlaylistUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	playlist, err := h.playlistService.UpdatePlaylist(c.UserContext(), middlewares.CurrentUserID(c), c.Params("playlistId"), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, playlist.ToResponse(), "Playlist updated successfully")
}

func (h *PlaylistHandler) DeletePlaylist(c *fiber.Ctx) error {
	result, err := h.playlistService.DeletePlaylist(c.UserContext(), middlewares.CurrentUserID(c), c.Params("playlistId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, result, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideoToPlaylist(c *fiber.Ctx) error {
	playlist, err := h.playlistService.AddVideo(c.UserContext(), middlewares.CurrentUserID(c), c.Params("videoId"), c.Params("playlistId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, playlist.ToResponse(), "Video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	playlist, err := h.playlistService.RemoveVideo(c.UserContext(), middlewares.CurrentUserID(c), c.Params("videoId"), c.Params("playlistId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, playlist.ToResponse(), "Video removed from playlist successfully")
}
