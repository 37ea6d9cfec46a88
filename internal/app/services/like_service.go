package services

import (
	"context"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// ToggleLike flips the actor's like on a target. created is true only when
// this call inserted the like.
func (s *LikeService) ToggleLike(ctx context.Context, actorID uuid.UUID, target models.LikeTarget, rawTargetID string) (result *models.LikeToggleResult, created bool, err error) {
	targetID, err := parseID(rawTargetID, string(target))
	if err != nil {
		return nil, false, err
	}

	db := s.db.WithContext(ctx)
	found, err := exists(db, targetModel(target), targetID)
	if err != nil {
		return nil, false, appError.NewInternalServerError(err, "Failed to get "+string(target))
	}
	if !found {
		return nil, false, appError.NewNotFoundError(target.Title() + " not found")
	}

	result = &models.LikeToggleResult{TargetType: target, TargetID: targetID, LikedBy: actorID}

	removed := db.Where(target.Column()+" = ? AND liked_by = ?", targetID, actorID).Delete(&models.Like{})
	if removed.Error != nil {
		return nil, false, appError.NewInternalServerError(removed.Error, "Failed to toggle like")
	}
	if removed.RowsAffected > 0 {
		return result, false, nil
	}

	like := &models.Like{LikedBy: actorID}
	switch target {
	case models.LikeTargetComment:
		like.CommentID = &targetID
	case models.LikeTargetTweet:
		like.TweetID = &targetID
	default:
		like.VideoID = &targetID
	}

	if err := db.Create(like).Error; err != nil {
		// A concurrent toggle already inserted the same like.
		if isDuplicate(err) {
			result.Liked = true
			return result, false, nil
		}
		return nil, false, appError.NewInternalServerError(err, "Failed to toggle like")
	}

	result.Liked = true
	result.LikeID = &like.ID
	return result, true, nil
}

// ListLikedVideos lists published videos the actor liked, newest like first.
func (s *LikeService) ListLikedVideos(ctx context.Context, actorID uuid.UUID, req models.PageRequest) (*models.Page[models.Like], error) {
	return pkg.Paginate[models.Like](s.db.WithContext(ctx), pkg.ListQuery{
		Model: &models.Like{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Joins("JOIN videos ON videos.id = likes.video_id").
				Where("likes.liked_by = ? AND videos.is_published = ?", actorID, true)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Video.Owner")
		},
		Sort: []clause.OrderByColumn{
			{Column: clause.Column{Table: clause.CurrentTable, Name: "created_at"}, Desc: true},
		},
	}, req)
}

func targetModel(target models.LikeTarget) any {
	switch target {
	case models.LikeTargetComment:
		return &models.Comment{}
	case models.LikeTargetTweet:
		return &models.Tweet{}
	default:
		return &models.Video{}
	}
}
