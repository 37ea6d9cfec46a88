package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/services"
	"github.com/safatanc/vidtube/pkg/ratelimit"
)

const (
	localUser        = "user"
	localTokenClaims = "token_claims"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type AuthMiddleware struct {
	tokenService *services.TokenService
	userService  *services.UserService
	userLimit    fiber.Handler
}

func NewAuthMiddleware(tokenService *services.TokenService, userService *services.UserService, rateLimitMiddleware *RateLimitMiddleware) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userService:  userService,
		userLimit:    rateLimitMiddleware.LimitByUser(ratelimit.AuthenticatedAPILimit),
	}
}

// AuthUser requires a valid access token from the Authorization header or
// the access token cookie and loads the user it belongs to. Authenticated
// requests are then rate limited per user.
func (m *AuthMiddleware) AuthUser(c *fiber.Ctx) error {
	token := accessToken(c)
	if token == "" {
		return errors.NewUnauthorizedError("Unauthorized request")
	}

	claims, err := m.tokenService.ParseAccessToken(c.UserContext(), token)
	if err != nil {
		return err
	}
	userID, err := claims.UserID()
	if err != nil {
		return errors.NewUnauthorizedError("Invalid access token")
	}

	user, err := m.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return errors.NewUnauthorizedError("Invalid access token")
	}

	c.Locals(localUser, user)
	c.Locals(localTokenClaims, claims)

	return m.userLimit(c)
}

func accessToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Cookies(AccessTokenCookie)
}

// CurrentUser returns the authenticated user, or nil outside AuthUser.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return uuid.Nil
}

func CurrentClaims(c *fiber.Ctx) *services.AccessClaims {
	claims, _ := c.Locals(localTokenClaims).(*services.AccessClaims)
	return claims
}
