package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/infrastructures"
)

type AccessClaims struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a uuid.
func (c *AccessClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenDenylist remembers revoked access token ids until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisTokenDenylist struct {
	redis     *redis.Client
	keyPrefix string
}

func NewRedisTokenDenylist(redis *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{redis: redis, keyPrefix: "vidtube:revoked"}
}

func (d *RedisTokenDenylist) key(tokenID string) string {
	return d.keyPrefix + ":" + tokenID
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.redis.Set(ctx, d.key(tokenID), 1, ttl).Err()
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.redis.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type TokenService struct {
	config   *infrastructures.AppConfig
	denylist TokenDenylist
	now      func() time.Time
}

func NewTokenService(config *infrastructures.AppConfig, denylist TokenDenylist) *TokenService {
	return &TokenService{config: config, denylist: denylist, now: time.Now}
}

// GenerateTokens issues a fresh access and refresh token pair for user.
func (s *TokenService) GenerateTokens(user *models.User) (*models.AuthTokens, error) {
	now := s.now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserName: user.UserName,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.ACCESS_TOKEN_EXPIRY)),
		},
	})
	accessToken, err := access.SignedString([]byte(s.config.ACCESS_TOKEN_SECRET))
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to generate access token")
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.REFRESH_TOKEN_EXPIRY)),
	})
	refreshToken, err := refresh.SignedString([]byte(s.config.REFRESH_TOKEN_SECRET))
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to generate refresh token")
	}

	return &models.AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *TokenService) ParseAccessToken(ctx context.Context, token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.parse(token, s.config.ACCESS_TOKEN_SECRET, claims); err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to check token status")
	}
	if revoked {
		return nil, appError.NewUnauthorizedError("Access token has been revoked")
	}
	return claims, nil
}

func (s *TokenService) ParseRefreshToken(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if err := s.parse(token, s.config.REFRESH_TOKEN_SECRET, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Revoke denies the access token until its natural expiry.
func (s *TokenService) Revoke(ctx context.Context, claims *AccessClaims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(s.now())); err != nil {
		return appError.NewInternalServerError(err, "Failed to revoke access token")
	}
	return nil
}

func (s *TokenService) parse(token, secret string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err == nil {
		return nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return appError.NewUnauthorizedError("Token has expired")
	}
	return appError.NewUnauthorizedError("Invalid token")
}
