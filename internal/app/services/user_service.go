package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	tokenService *TokenService
	mediaService *MediaService
}

func NewUserService(db *gorm.DB, validator *infrastructures.Validator, tokenService *TokenService, mediaService *MediaService) *UserService {
	return &UserService{
		db:           db,
		validator:    validator,
		tokenService: tokenService,
		mediaService: mediaService,
	}
}

// Register creates a user with an avatar and an optional cover image.
// Uploaded media is removed again if the user cannot be stored.
func (s *UserService) Register(ctx context.Context, req *models.UserRegisterRequest, avatarPath, coverPath string) (*models.User, error) {
	defer RemoveLocalFile(avatarPath)
	defer RemoveLocalFile(coverPath)

	req.FullName = strings.TrimSpace(req.FullName)
	req.UserName = strings.ToLower(strings.TrimSpace(req.UserName))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if avatarPath == "" {
		return nil, appError.NewBadRequestError("Avatar file is required")
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("user_name = ? OR email = ?", req.UserName, req.Email).Count(&count).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to check existing user")
	}
	if count > 0 {
		return nil, appError.NewConflictError("User with email or username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to hash password")
	}

	comp := &pkg.Compensator{}
	avatar, err := s.mediaService.Upload(ctx, avatarPath, models.MediaKindImage, comp)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserName:       req.UserName,
		Email:          req.Email,
		FullName:       req.FullName,
		Avatar:         avatar.URL,
		AvatarPublicID: avatar.PublicID,
		Password:       string(hashed),
	}

	if coverPath != "" {
		cover, err := s.mediaService.Upload(ctx, coverPath, models.MediaKindImage, comp)
		if err != nil {
			comp.Rollback(context.WithoutCancel(ctx))
			return nil, err
		}
		user.CoverImage = cover.URL
		user.CoverImagePublicID = cover.PublicID
	}

	if err := db.Create(user).Error; err != nil {
		comp.Rollback(context.WithoutCancel(ctx))
		if isDuplicate(err) {
			return nil, appError.NewConflictError("User with email or username already exists")
		}
		return nil, appError.NewInternalServerError(err, "Something went wrong while registering the user")
	}
	comp.Commit()

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.UserLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("user_name = ? OR email = ?", strings.ToLower(strings.TrimSpace(req.UserName)), strings.ToLower(strings.TrimSpace(req.Email))).
		First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("User does not exist")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, appError.NewUnauthorizedError("Invalid user credentials")
	}

	tokens, err := s.issueTokens(ctx, &user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{User: &user, AuthTokens: *tokens}, nil
}

// RefreshTokens rotates the token pair. The presented refresh token must be
// the one stored on the user.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	if refreshToken == "" {
		return nil, appError.NewUnauthorizedError("Unauthorized request")
	}

	claims, err := s.tokenService.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, appError.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		var appErr *appError.AppError
		if errors.As(err, &appErr) && appErr.Kind == appError.KindNotFound {
			return nil, appError.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, appError.NewUnauthorizedError("Refresh token is expired or used")
	}

	return s.issueTokens(ctx, user)
}

func (s *UserService) Logout(ctx context.Context, userID uuid.UUID, claims *AccessClaims) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", "").Error
	if err != nil {
		return appError.NewInternalServerError(err, "Failed to logout")
	}
	return s.tokenService.Revoke(ctx, claims)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return appError.NewBadRequestError("Invalid old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appError.NewInternalServerError(err, "Failed to hash password")
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password", string(hashed)).Error; err != nil {
		return appError.NewInternalServerError(err, "Failed to change password")
	}
	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("User not found")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get user")
	}
	return &user, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, req *models.UserUpdateRequest) (*models.User, error) {
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		req.FullName = &trimmed
	}
	if req.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &normalized
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.FullName == nil && req.Email == nil {
		return nil, appError.NewBadRequestError("At least one of fullName or email is required")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil && *req.Email != user.Email {
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if isDuplicate(err) {
			return nil, appError.NewConflictError("Email is already in use")
		}
		return nil, appError.NewInternalServerError(err, "Failed to update account")
	}
	return s.GetUserByID(ctx, userID)
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	return s.replaceImage(ctx, userID, localPath, "avatar", "Avatar")
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	return s.replaceImage(ctx, userID, localPath, "cover_image", "Cover image")
}

// replaceImage uploads a new image, points the user at it and then deletes
// the previous asset best-effort.
func (s *UserService) replaceImage(ctx context.Context, userID uuid.UUID, localPath, column, label string) (*models.User, error) {
	defer RemoveLocalFile(localPath)
	if localPath == "" {
		return nil, appError.NewBadRequestError(label + " file is missing")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldPublicID := user.AvatarPublicID
	if column == "cover_image" {
		oldPublicID = user.CoverImagePublicID
	}

	comp := &pkg.Compensator{}
	asset, err := s.mediaService.Upload(ctx, localPath, models.MediaKindImage, comp)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		column:               asset.URL,
		column + "_public_id": asset.PublicID,
	}).Error
	if err != nil {
		comp.Rollback(context.WithoutCancel(ctx))
		return nil, appError.NewInternalServerError(err, "Failed to update "+strings.ToLower(label))
	}
	comp.Commit()

	if oldPublicID != "" {
		s.mediaService.Delete(context.WithoutCancel(ctx), oldPublicID, "image")
	}
	return s.GetUserByID(ctx, userID)
}

// GetChannelProfile returns a user's public channel. viewerID decides
// isSubscribed.
func (s *UserService) GetChannelProfile(ctx context.Context, userName string, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, appError.NewBadRequestError("Username is missing")
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("Channel does not exist")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get channel")
	}

	profile := &models.ChannelProfile{User: &user}
	if err := db.Model(&models.Subscription{}).Where("channel_id = ?", user.ID).Count(&profile.SubscribersCount).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to count subscribers")
	}
	if err := db.Model(&models.Subscription{}).Where("subscriber_id = ?", user.ID).Count(&profile.ChannelsSubscribedToCount).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to count subscriptions")
	}

	var subscribed int64
	if err := db.Model(&models.Subscription{}).Where("channel_id = ? AND subscriber_id = ?", user.ID, viewerID).Count(&subscribed).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to check subscription")
	}
	profile.IsSubscribed = subscribed > 0

	return profile, nil
}

func (s *UserService) GetWatchHistory(ctx context.Context, userID uuid.UUID, req models.PageRequest) (*models.Page[models.WatchHistory], error) {
	return pkg.Paginate[models.WatchHistory](s.db.WithContext(ctx), pkg.ListQuery{
		Model: &models.WatchHistory{},
		Filter: func(db *gorm.DB) *gorm.DB {
			return db.Joins("JOIN videos ON videos.id = watch_histories.video_id").
				Where("watch_histories.user_id = ?", userID)
		},
		Expand: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Video.Owner")
		},
		Sort: []clause.OrderByColumn{
			{Column: clause.Column{Table: clause.CurrentTable, Name: "updated_at"}, Desc: true},
		},
	}, req)
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*models.AuthTokens, error) {
	tokens, err := s.tokenService.GenerateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("refresh_token", tokens.RefreshToken).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to store refresh token")
	}
	return tokens, nil
}
