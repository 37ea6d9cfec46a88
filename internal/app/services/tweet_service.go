package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"github.com/safatanc/vidtube/internal/infrastructures"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TweetService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewTweetService(db *gorm.DB, validator *infrastructures.Validator) *TweetService {
	return &TweetService{db: db, validator: validator}
}

func (s *TweetService) CreateTweet(ctx context.Context, actorID uuid.UUID, req *models.TweetRequest) (*models.Tweet, error) {
	if err := s.validateContent(req); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{Content: req.Content, OwnerID: actorID}
	if err := s.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to create tweet")
	}
	return s.getTweet(ctx, tweet.ID)
}

func (s *TweetService) ListUserTweets(ctx context.Context, rawUserID string, req models.PageRequest) (*models.Page[models.Tweet], error) {
	userID, err := parseID(rawUserID, "user")
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	found, err := exists(db, &models.User{}, userID)
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to get user")
	}
	if !found {
		return nil, appError.NewNotFoundError("User not found")
	}

	return pkg.Paginate[models.Tweet](db, pkg.ListQuery{
		Model: &models.Tweet{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("owner_id = ?", userID)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Owner")
		},
	}, req)
}

func (s *TweetService) UpdateTweet(ctx context.Context, actorID uuid.UUID, rawTweetID string, req *models.TweetRequest) (*models.Tweet, error) {
	tweet, err := s.findOwnedTweet(ctx, actorID, rawTweetID, "You are not allowed to update this tweet")
	if err != nil {
		return nil, err
	}
	if err := s.validateContent(req); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(tweet).Omit(clause.Associations).Update("content", req.Content).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to update tweet")
	}
	return s.getTweet(ctx, tweet.ID)
}

// DeleteTweet removes a tweet and its likes.
func (s *TweetService) DeleteTweet(ctx context.Context, actorID uuid.UUID, rawTweetID string) (*models.TweetDeleteResult, error) {
	tweet, err := s.findOwnedTweet(ctx, actorID, rawTweetID, "You are not allowed to delete this tweet")
	if err != nil {
		return nil, err
	}

	result := &models.TweetDeleteResult{TweetID: tweet.ID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		likes := tx.Where("tweet_id = ?", tweet.ID).Delete(&models.Like{})
		if likes.Error != nil {
			return likes.Error
		}
		result.DeletedLikes = likes.RowsAffected
		return tx.Delete(tweet).Error
	})
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to delete tweet")
	}
	return result, nil
}

func (s *TweetService) validateContent(req *models.TweetRequest) error {
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if utf8.RuneCountInString(req.Content) > models.TweetMaxLength {
		return appError.NewBadRequestError("Tweet cannot exceed 280 characters")
	}
	return nil
}

func (s *TweetService) getTweet(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := s.db.WithContext(ctx).Preload("Owner").First(&tweet, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("Tweet not found")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get tweet")
	}
	return &tweet, nil
}

func (s *TweetService) findOwnedTweet(ctx context.Context, actorID uuid.UUID, rawID, forbidden string) (*models.Tweet, error) {
	tweetID, err := parseID(rawID, "tweet")
	if err != nil {
		return nil, err
	}
	tweet, err := s.getTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(tweet.OwnerID, actorID, forbidden); err != nil {
		return nil, err
	}
	return tweet, nil
}
