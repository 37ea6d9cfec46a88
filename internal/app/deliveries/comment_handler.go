package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
)

type CommentHandler struct {
	commentService *services.CommentService
	authMiddleware *middlewares.AuthMiddleware
}

func NewCommentHandler(commentService *services.CommentService, authMiddleware *middlewares.AuthMiddleware) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		authMiddleware: authMiddleware,
	}
}

func (h *CommentHandler) RegisterRoutes(router fiber.Router) {
	commentGroup := router.Group("/comments", h.authMiddleware.AuthUser)

	commentGroup.Patch("/c/:commentId", h.UpdateComment)
	commentGroup.Delete("/c/:commentId", h.DeleteComment)
	commentGroup.Get("/:videoId", h.GetVideoComments)
	commentGroup.Post("/:videoId", h.AddComment)
}

func (h *CommentHandler) GetVideoComments(c *fiber.Ctx) error {
	page, err := h.commentService.ListComments(c.UserContext(), c.Params("videoId"), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Comments fetched successfully",
		"No comments found for this video",
		"No comments found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewCommentList(page), message)
}

func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	var req models.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	comment, err := h.commentService.AddComment(c.UserContext(), middlewares.CurrentUserID(c), c.Params("videoId"), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusCreated, comment.ToResponse(), "Comment added successfully")
}

func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	var req models.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	comment, err := h.commentService.UpdateComment(c.UserContext(), middlewares.CurrentUserID(c), c.Params("commentId"), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, comment.ToResponse(), "Comment updated successfully")
}

func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	result, err := h.commentService.DeleteComment(c.UserContext(), middlewares.CurrentUserID(c), c.Params("commentId"))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, result, "Comment deleted successfully")
}
