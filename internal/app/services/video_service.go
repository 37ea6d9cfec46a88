package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var videoSortColumns = map[string]string{
	"views":     "views",
	"duration":  "duration",
	"createdAt": "created_at",
	"title":     "title",
}

type VideoService struct {
	db           *gorm.DB
	validator    *infrastructures.Validator
	mediaService *MediaService
}

func NewVideoService(db *gorm.DB, validator *infrastructures.Validator, mediaService *MediaService) *VideoService {
	return &VideoService{
		db:           db,
		validator:    validator,
		mediaService: mediaService,
	}
}

// NewVideoListFilter validates the raw query string of a video listing.
func NewVideoListFilter(query, sortBy, sortType, userID string) (*models.VideoListFilter, error) {
	filter := &models.VideoListFilter{
		Query:    strings.TrimSpace(query),
		SortBy:   sortBy,
		SortType: strings.ToLower(sortType),
	}

	if filter.SortBy == "" {
		filter.SortBy = "createdAt"
	}
	if _, ok := videoSortColumns[filter.SortBy]; !ok {
		return nil, appError.NewBadRequestError("Invalid sortBy field. Allowed values: views, duration, createdAt, title")
	}

	if filter.SortType == "" {
		filter.SortType = "desc"
	}
	if filter.SortType != "asc" && filter.SortType != "desc" {
		return nil, appError.NewBadRequestError("Invalid sortType. Allowed values: asc, desc")
	}

	if userID != "" {
		id, err := parseID(userID, "user")
		if err != nil {
			return nil, err
		}
		filter.UserID = &id
	}
	return filter, nil
}

// ListVideos returns published videos matching filter.
func (s *VideoService) ListVideos(ctx context.Context, filter *models.VideoListFilter, req models.PageRequest) (*models.Page[models.Video], error) {
	db := s.db.WithContext(ctx)

	if filter.UserID != nil {
		found, err := exists(db, &models.User{}, *filter.UserID)
		if err != nil {
			return nil, appError.NewInternalServerError(err, "Failed to get user")
		}
		if !found {
			return nil, appError.NewNotFoundError("User not found")
		}
	}

	return pkg.Paginate[models.Video](db, pkg.ListQuery{
		Model: &models.Video{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			tx = tx.Where("is_published = ?", true)
			if filter.Query != "" {
				pattern := likePattern(strings.ToLower(filter.Query))
				tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
			}
			if filter.UserID != nil {
				tx = tx.Where("owner_id = ?", *filter.UserID)
			}
			return tx
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Owner")
		},
		Sort: []clause.OrderByColumn{{
			Column: clause.Column{Table: clause.CurrentTable, Name: videoSortColumns[filter.SortBy]},
			Desc:   filter.SortType == "desc",
		}},
	}, req)
}

// PublishVideo uploads the video file and thumbnail and stores the video.
// Both uploads are undone if any later step fails.
func (s *VideoService) PublishVideo(ctx context.Context, ownerID uuid.UUID, req *models.VideoCreateRequest, videoPath, thumbnailPath string) (*models.Video, error) {
	defer RemoveLocalFile(videoPath)
	defer RemoveLocalFile(thumbnailPath)

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	duration, err := decimal.NewFromString(req.Duration)
	if err != nil || duration.IsNegative() {
		return nil, appError.NewBadRequestError("Duration must be a non-negative number")
	}
	if videoPath == "" {
		return nil, appError.NewBadRequestError("Video file is required")
	}
	if thumbnailPath == "" {
		return nil, appError.NewBadRequestError("Thumbnail is required")
	}

	comp := &pkg.Compensator{}
	videoAsset, err := s.mediaService.Upload(ctx, videoPath, models.MediaKindVideo, comp)
	if err != nil {
		return nil, err
	}
	thumbnailAsset, err := s.mediaService.Upload(ctx, thumbnailPath, models.MediaKindImage, comp)
	if err != nil {
		comp.Rollback(context.WithoutCancel(ctx))
		return nil, err
	}

	video := &models.Video{
		VideoFile:             videoAsset.URL,
		VideoFilePublicID:     videoAsset.PublicID,
		VideoFileResourceType: resourceTypeOr(videoAsset.ResourceType, "video"),
		Thumbnail:             thumbnailAsset.URL,
		ThumbnailPublicID:     thumbnailAsset.PublicID,
		ThumbnailResourceType: resourceTypeOr(thumbnailAsset.ResourceType, "image"),
		Title:                 req.Title,
		Description:           req.Description,
		Duration:              duration.Round(2),
		IsPublished:           true,
		OwnerID:               ownerID,
	}
	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		comp.Rollback(context.WithoutCancel(ctx))
		return nil, appError.NewInternalServerError(err, "Failed to save video")
	}
	comp.Commit()

	return s.getVideo(ctx, video.ID)
}

// GetVideoByID returns a video for viewing. Unpublished videos are only
// visible to their owner. A view counts and lands in the viewer's history.
func (s *VideoService) GetVideoByID(ctx context.Context, rawID string, viewerID uuid.UUID) (*models.Video, error) {
	videoID, err := parseID(rawID, "video")
	if err != nil {
		return nil, err
	}

	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, appError.NewForbiddenError("This video is not published")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Video{}).Where("id = ?", video.ID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			return err
		}
		if viewerID == uuid.Nil {
			return nil
		}
		return recordWatch(tx, viewerID, video.ID)
	})
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to record video view")
	}
	video.Views++

	return video, nil
}

// recordWatch keeps one history row per user and video, bumped to the top
// on every view. Concurrent first views of the same video collapse into one
// row through the unique pair index.
func recordWatch(tx *gorm.DB, userID, videoID uuid.UUID) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": time.Now()}),
	}).Create(&models.WatchHistory{UserID: userID, VideoID: videoID}).Error
}

// UpdateVideo changes title, description and thumbnail. The boolean result
// reports whether anything changed.
func (s *VideoService) UpdateVideo(ctx context.Context, actorID uuid.UUID, rawID string, req *models.VideoUpdateRequest, thumbnailPath string) (*models.Video, bool, error) {
	defer RemoveLocalFile(thumbnailPath)

	video, err := s.findOwnedVideo(ctx, actorID, rawID, "You do not have permission to update this video")
	if err != nil {
		return nil, false, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, false, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil && *req.Title != "" && *req.Title != video.Title {
		updates["title"] = *req.Title
	}
	if req.Description != nil && *req.Description != "" && *req.Description != video.Description {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 && thumbnailPath == "" {
		return video, false, nil
	}

	comp := &pkg.Compensator{}
	oldThumbnail := video.ThumbnailPublicID
	oldThumbnailType := video.ThumbnailResourceType
	if thumbnailPath != "" {
		asset, err := s.mediaService.Upload(ctx, thumbnailPath, models.MediaKindImage, comp)
		if err != nil {
			return nil, false, err
		}
		updates["thumbnail"] = asset.URL
		updates["thumbnail_public_id"] = asset.PublicID
		updates["thumbnail_resource_type"] = resourceTypeOr(asset.ResourceType, "image")
	}

	if err := s.db.WithContext(ctx).Model(video).Omit(clause.Associations).Updates(updates).Error; err != nil {
		comp.Rollback(context.WithoutCancel(ctx))
		return nil, false, appError.NewInternalServerError(err, "Failed to update video")
	}
	comp.Commit()

	if thumbnailPath != "" && oldThumbnail != "" {
		s.mediaService.Delete(context.WithoutCancel(ctx), oldThumbnail, oldThumbnailType)
	}

	updated, err := s.getVideo(ctx, video.ID)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// DeleteVideo removes a video with its comments, the likes on both and its
// playlist and history entries. Media removal runs afterwards and never
// fails the request.
func (s *VideoService) DeleteVideo(ctx context.Context, actorID uuid.UUID, rawID string) (*models.VideoDeleteResult, error) {
	video, err := s.findOwnedVideo(ctx, actorID, rawID, "You do not have permission to delete this video")
	if err != nil {
		return nil, err
	}

	result := &models.VideoDeleteResult{DeletedVideoID: video.ID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", video.ID)

		likes := tx.Where("video_id = ? OR comment_id IN (?)", video.ID, commentIDs).Delete(&models.Like{})
		if likes.Error != nil {
			return likes.Error
		}
		result.DeletedLikes = likes.RowsAffected

		comments := tx.Where("video_id = ?", video.ID).Delete(&models.Comment{})
		if comments.Error != nil {
			return comments.Error
		}
		result.DeletedComments = comments.RowsAffected

		if err := tx.Where("video_id = ?", video.ID).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", video.ID).Delete(&models.WatchHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(video).Error
	})
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to delete video")
	}

	cleanupCtx := context.WithoutCancel(ctx)
	result.VideoFileAssetStatus = s.mediaService.Delete(cleanupCtx, video.VideoFilePublicID, video.VideoFileResourceType)
	result.ThumbnailAssetStatus = s.mediaService.Delete(cleanupCtx, video.ThumbnailPublicID, video.ThumbnailResourceType)

	return result, nil
}

func (s *VideoService) TogglePublishStatus(ctx context.Context, actorID uuid.UUID, rawID string) (*models.VideoPublishStatus, error) {
	video, err := s.findOwnedVideo(ctx, actorID, rawID, "You do not have permission to change this video")
	if err != nil {
		return nil, err
	}

	published := !video.IsPublished
	if err := s.db.WithContext(ctx).Model(video).Omit(clause.Associations).Update("is_published", published).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to toggle publish status")
	}
	return &models.VideoPublishStatus{VideoID: video.ID, IsPublished: published}, nil
}

// ListChannelVideos lists every video of owner, unpublished included.
func (s *VideoService) ListChannelVideos(ctx context.Context, ownerID uuid.UUID, req models.PageRequest) (*models.Page[models.Video], error) {
	return pkg.Paginate[models.Video](s.db.WithContext(ctx), pkg.ListQuery{
		Model: &models.Video{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("owner_id = ?", ownerID)
		},
	}, req)
}

func (s *VideoService) getVideo(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var video models.Video
	if err := s.db.WithContext(ctx).Preload("Owner").First(&video, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("Video not found")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get video")
	}
	return &video, nil
}

func (s *VideoService) findOwnedVideo(ctx context.Context, actorID uuid.UUID, rawID, forbidden string) (*models.Video, error) {
	videoID, err := parseID(rawID, "video")
	if err != nil {
		return nil, err
	}
	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(video.OwnerID, actorID, forbidden); err != nil {
		return nil, err
	}
	return video, nil
}

func resourceTypeOr(resourceType, fallback string) string {
	if resourceType == "" {
		return fallback
	}
	return resourceType
}
