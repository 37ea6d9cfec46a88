package deliveries

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/middlewares"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/app/services"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/safatanc/vidtube/pkg/ratelimit"
)

type UserHandler struct {
	userService         *services.UserService
	authMiddleware      *middlewares.AuthMiddleware
	rateLimitMiddleware *middlewares.RateLimitMiddleware
	config              *infrastructures.AppConfig
}

func NewUserHandler(userService *services.UserService, authMiddleware *middlewares.AuthMiddleware, rateLimitMiddleware *middlewares.RateLimitMiddleware, config *infrastructures.AppConfig) *UserHandler {
	return &UserHandler{
		userService:         userService,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
		config:              config,
	}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userGroup := router.Group("/users")

	authLimit := h.rateLimitMiddleware.LimitByIP(ratelimit.AuthLimit)
	userGroup.Post("/register", authLimit, h.Register)
	userGroup.Post("/login", authLimit, h.Login)
	userGroup.Post("/refresh-token", authLimit, h.RefreshToken)

	userGroup.Post("/logout", h.authMiddleware.AuthUser, h.Logout)
	userGroup.Post("/change-password", h.authMiddleware.AuthUser, h.ChangePassword)
	userGroup.Get("/current-user", h.authMiddleware.AuthUser, h.GetCurrentUser)
	userGroup.Patch("/update-account", h.authMiddleware.AuthUser, h.UpdateAccount)
	userGroup.Patch("/avatar", h.authMiddleware.AuthUser, h.rateLimitMiddleware.LimitByUser(ratelimit.UploadLimit), h.UpdateAvatar)
	userGroup.Patch("/cover-image", h.authMiddleware.AuthUser, h.rateLimitMiddleware.LimitByUser(ratelimit.UploadLimit), h.UpdateCoverImage)
	userGroup.Get("/c/:userName", h.authMiddleware.AuthUser, h.GetChannelProfile)
	userGroup.Get("/history", h.authMiddleware.AuthUser, h.GetWatchHistory)
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req models.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	paths, err := saveUploads(c, h.config.UPLOAD_TEMP_DIR, "avatar", "coverImage")
	if err != nil {
		return err
	}

	user, err := h.userService.Register(c.UserContext(), &req, paths[0], paths[1])
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusCreated, user, "User registered successfully")
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req models.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	resp, err := h.userService.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}

	h.setAuthCookies(c, &resp.AuthTokens)
	return pkg.SuccessResponse(c, fiber.StatusOK, resp, "User logged in successfully")
}

func (h *UserHandler) RefreshToken(c *fiber.Ctx) error {
	token := c.Cookies(middlewares.RefreshTokenCookie)
	if token == "" {
		var req models.RefreshTokenRequest
		if err := c.BodyParser(&req); err == nil {
			token = req.RefreshToken
		}
	}

	tokens, err := h.userService.RefreshTokens(c.UserContext(), token)
	if err != nil {
		return err
	}

	h.setAuthCookies(c, tokens)
	return pkg.SuccessResponse(c, fiber.StatusOK, tokens, "Access token refreshed")
}

func (h *UserHandler) Logout(c *fiber.Ctx) error {
	if err := h.userService.Logout(c.UserContext(), middlewares.CurrentUserID(c), middlewares.CurrentClaims(c)); err != nil {
		return err
	}

	c.ClearCookie(middlewares.AccessTokenCookie, middlewares.RefreshTokenCookie)
	return pkg.SuccessResponse(c, fiber.StatusOK, fiber.Map{}, "User logged out")
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	if err := h.userService.ChangePassword(c.UserContext(), middlewares.CurrentUserID(c), &req); err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, fiber.Map{}, "Password changed successfully")
}

func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, fiber.StatusOK, middlewares.CurrentUser(c), "User fetched successfully")
}

func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	var req models.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	user, err := h.userService.UpdateAccount(c.UserContext(), middlewares.CurrentUserID(c), &req)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, user, "Account details updated successfully")
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	path, err := saveUpload(c, h.config.UPLOAD_TEMP_DIR, "avatar")
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateAvatar(c.UserContext(), middlewares.CurrentUserID(c), path)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, user, "Avatar image updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *fiber.Ctx) error {
	path, err := saveUpload(c, h.config.UPLOAD_TEMP_DIR, "coverImage")
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateCoverImage(c.UserContext(), middlewares.CurrentUserID(c), path)
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, user, "Cover image updated successfully")
}

func (h *UserHandler) GetChannelProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetChannelProfile(c.UserContext(), c.Params("userName"), middlewares.CurrentUserID(c))
	if err != nil {
		return err
	}

	return pkg.SuccessResponse(c, fiber.StatusOK, profile, "User channel fetched successfully")
}

func (h *UserHandler) GetWatchHistory(c *fiber.Ctx) error {
	page, err := h.userService.GetWatchHistory(c.UserContext(), middlewares.CurrentUserID(c), pkg.ParsePageRequest(c, pkg.MaxLimit))
	if err != nil {
		return err
	}

	message := pkg.PageMessage(page.State,
		"Watch history fetched successfully",
		"No watch history found",
		"No watch history found on this page",
	)
	return pkg.SuccessResponse(c, fiber.StatusOK, models.NewWatchHistoryList(page), message)
}

func (h *UserHandler) setAuthCookies(c *fiber.Ctx, tokens *models.AuthTokens) {
	secure := h.config.IsProduction()
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Expires:  time.Now().Add(h.config.ACCESS_TOKEN_EXPIRY),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Expires:  time.Now().Add(h.config.REFRESH_TOKEN_EXPIRY),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
