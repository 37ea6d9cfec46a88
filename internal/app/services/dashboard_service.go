package services

import (
	"context"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardService struct {
	db           *gorm.DB
	videoService *VideoService
}

func NewDashboardService(db *gorm.DB, videoService *VideoService) *DashboardService {
	return &DashboardService{db: db, videoService: videoService}
}

// GetChannelStats runs the independent aggregates concurrently.
func (s *DashboardService) GetChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	stats := &models.ChannelStats{ChannelID: ownerID}
	g, gctx := errgroup.WithContext(ctx)
	db := func() *gorm.DB { return s.db.WithContext(gctx) }

	g.Go(func() error {
		return db().Model(&models.Video{}).Where("owner_id = ?", ownerID).Count(&stats.TotalVideos).Error
	})
	g.Go(func() error {
		return db().Model(&models.Video{}).Where("owner_id = ?", ownerID).
			Select("COALESCE(SUM(views), 0)").Scan(&stats.TotalViews).Error
	})
	g.Go(func() error {
		return db().Model(&models.Video{}).Where("owner_id = ?", ownerID).
			Select("COALESCE(SUM(duration), 0)").Scan(&stats.TotalDuration).Error
	})
	g.Go(func() error {
		return db().Model(&models.Subscription{}).Where("channel_id = ?", ownerID).Count(&stats.TotalSubscribers).Error
	})
	g.Go(func() error {
		return db().Model(&models.Like{}).
			Joins("JOIN videos ON videos.id = likes.video_id").
			Where("videos.owner_id = ?", ownerID).
			Count(&stats.TotalLikes).Error
	})

	if err := g.Wait(); err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to get channel stats")
	}
	return stats, nil
}

func (s *DashboardService) ListChannelVideos(ctx context.Context, ownerID uuid.UUID, req models.PageRequest) (*models.Page[models.Video], error) {
	return s.videoService.ListChannelVideos(ctx, ownerID, req)
}
