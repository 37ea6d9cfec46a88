package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewCommentService(db *gorm.DB, validator *infrastructures.Validator) *CommentService {
	return &CommentService{db: db, validator: validator}
}

func (s *CommentService) ListComments(ctx context.Context, rawVideoID string, req models.PageRequest) (*models.Page[models.Comment], error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	found, err := exists(db, &models.Video{}, videoID)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to get video")
	}
	if !found {
		return nil, appError.NewNotFoundError("Video not found")
	}

	return pkg.Paginate[models.Comment](db, pkg.ListQuery{
		Model: &models.Comment{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("video_id = ?", videoID)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Owner")
		},
	}, req)
}

func (s *CommentService) AddComment(ctx context.Context, actorID uuid.UUID, rawVideoID string, req *models.CommentRequest) (*models.Comment, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	found, err := exists(db, &models.Video{}, videoID)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to get video")
	}
	if !found {
		return nil, appError.NewNotFoundError("Video not found")
	}

	comment := &models.Comment{Content: req.Content, VideoID: videoID, OwnerID: actorID}
	if err := db.Create(comment).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to add comment")
	}
	return s.getComment(ctx, comment.ID)
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID uuid.UUID, rawCommentID string, req *models.CommentRequest) (*models.Comment, error) {
	comment, err := s.findOwnedComment(ctx, actorID, rawCommentID, "You are not allowed to update this comment")
	if err != nil {
		return nil, err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(comment).Omit(clause.Associations).Update("content", req.Content).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to update comment")
	}
	return s.getComment(ctx, comment.ID)
}

// DeleteComment removes a comment and the likes it collected.
func (s *CommentService) DeleteComment(ctx context.Context, actorID uuid.UUID, rawCommentID string) (*models.CommentDeleteResult, error) {
	comment, err := s.findOwnedComment(ctx, actorID, rawCommentID, "You are not allowed to delete this comment")
	if err != nil {
		return nil, err
	}

	result := &models.CommentDeleteResult{DeletedCommentID: comment.ID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes := tx.Where("comment_id = ?", comment.ID).Delete(&models.Like{})
		if likes.Error != nil {
			return likes.Error
		}
		result.DeletedLikes = likes.RowsAffected
		return tx.Delete(comment).Error
	})
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to delete comment")
	}
	return result, nil
}

func (s *CommentService) getComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).Preload("Owner").First(&comment, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("Comment not found")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get comment")
	}
	return &comment, nil
}

func (s *CommentService) findOwnedComment(ctx context.Context, actorID uuid.UUID, rawID, forbidden string) (*models.Comment, error) {
	commentID, err := parseID(rawID, "comment")
	if err != nil {
		return nil, err
	}
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(comment.OwnerID, actorID, forbidden); err != nil {
		return nil, err
	}
	return comment, nil
}
