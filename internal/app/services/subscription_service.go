package services

import (
	"context"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/safatanc/vidtube/internal/app/pkg"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// ToggleSubscription subscribes the actor to a channel or cancels an
// existing subscription. created is true only when this call subscribed.
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, actorID uuid.UUID, rawChannelID string) (*models.SubscriptionToggleResult, bool, error) {
	channelID, err := parseID(rawChannelID, "channel")
	if err != nil {
		return nil, false, err
	}
	if channelID == actorID {
		return nil, false, appError.NewBadRequestError("You cannot subscribe to your own channel")
	}

	db := s.db.WithContext(ctx)
	if err := s.requireUser(db, channelID, "Channel not found"); err != nil {
		return nil, false, err
	}

	result := &models.SubscriptionToggleResult{ChannelID: channelID, SubscriberID: actorID}

	removed := db.Where("channel_id = ? AND subscriber_id = ?", channelID, actorID).Delete(&models.Subscription{})
	if removed.Error != nil {
		return nil, false, appError.NewInternalServerError(removed.Error, "Failed to toggle subscription")
	}
	if removed.RowsAffected > 0 {
		return result, false, nil
	}

	subscription := &models.Subscription{SubscriberID: actorID, ChannelID: channelID}
	if err := db.Create(subscription).Error; err != nil {
		// Lost the race against an identical subscribe.
		if isDuplicate(err) {
			result.Subscribed = true
			return result, false, nil
		}
		return nil, false, appError.NewInternalServerError(err, "Failed to toggle subscription")
	}

	result.Subscribed = true
	result.SubscriptionID = &subscription.ID
	return result, true, nil
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, rawChannelID string, req models.PageRequest) (*models.Page[models.Subscription], error) {
	channelID, err := parseID(rawChannelID, "channel")
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.requireUser(db, channelID, "Channel not found"); err != nil {
		return nil, err
	}

	return pkg.Paginate[models.Subscription](db, pkg.ListQuery{
		Model: &models.Subscription{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("channel_id = ?", channelID)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Subscriber")
		},
	}, req)
}

func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, rawSubscriberID string, req models.PageRequest) (*models.Page[models.Subscription], error) {
	subscriberID, err := parseID(rawSubscriberID, "subscriber")
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.requireUser(db, subscriberID, "Subscriber not found"); err != nil {
		return nil, err
	}

	return pkg.Paginate[models.Subscription](db, pkg.ListQuery{
		Model: &models.Subscription{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("subscriber_id = ?", subscriberID)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Channel")
		},
	}, req)
}

func (s *SubscriptionService) requireUser(db *gorm.DB, id uuid.UUID, notFound string) error {
	found, err := exists(db, &models.User{}, id)
	if err != nil {
		return appError.NewInternalServerError(err, "Failed to get user")
	}
	if !found {
		return appError.NewNotFoundError(notFound)
	}
	return nil
}
