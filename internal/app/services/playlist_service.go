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

type PlaylistService struct {
	db        *gorm.DB
	validator *infrastructures.Validator
}

func NewPlaylistService(db *gorm.DB, validator *infrastructures.Validator) *PlaylistService {
	return &PlaylistService{db: db, validator: validator}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, actorID uuid.UUID, req *models.PlaylistCreateRequest) (*models.Playlist, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	playlist := &models.Playlist{Name: req.Name, Description: req.Description, OwnerID: actorID}
	if err := s.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to create playlist")
	}
	return s.getPlaylist(ctx, playlist.ID)
}

// ListUserPlaylists lists a user's playlists. Each item carries its entry
// count and the thumbnails of its first few videos.
func (s *PlaylistService) ListUserPlaylists(ctx context.Context, rawUserID string, req models.PageRequest) (*models.Page[models.Playlist], error) {
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

	page, err := pkg.Paginate[models.Playlist](db, pkg.ListQuery{
		Model: &models.Playlist{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("owner_id = ?", userID)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Select("playlists.*, (SELECT COUNT(*) FROM playlist_videos WHERE playlist_videos.playlist_id = playlists.id) AS video_count").
				Preload("Owner").
				Preload("Entries", func(tx *gorm.DB) *gorm.DB {
					return tx.Select("id", "playlist_id", "video_id", "created_at").Order("created_at ASC").Order("id ASC")
				})
		},
	}, req)
	if err != nil {
		return nil, err
	}

	if err := loadPreviewThumbnails(db, page.Items); err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to load playlist previews")
	}
	return page, nil
}

type playlistPreview struct {
	PlaylistID uuid.UUID
	Thumbnail  string
}

// loadPreviewThumbnails fetches at most PlaylistPreviewSize thumbnails per
// playlist in one query, in the order the videos were added.
func loadPreviewThumbnails(db *gorm.DB, playlists []models.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}

	ranked := db.Model(&models.PlaylistVideo{}).
		Select("playlist_id, video_id, ROW_NUMBER() OVER (PARTITION BY playlist_id ORDER BY created_at, id) AS position").
		Where("playlist_id IN ?", ids)

	var rows []playlistPreview
	err := db.Table("(?) AS ranked", ranked).
		Select("ranked.playlist_id, videos.thumbnail").
		Joins("JOIN videos ON videos.id = ranked.video_id").
		Where("ranked.position <= ?", models.PlaylistPreviewSize).
		Order("ranked.playlist_id").
		Order("ranked.position").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	byPlaylist := make(map[uuid.UUID][]string, len(playlists))
	for _, r := range rows {
		byPlaylist[r.PlaylistID] = append(byPlaylist[r.PlaylistID], r.Thumbnail)
	}
	for i := range playlists {
		playlists[i].PreviewThumbnails = byPlaylist[playlists[i].ID]
	}
	return nil
}

// GetPlaylist returns a playlist with one page of its videos in the order
// they were added.
func (s *PlaylistService) GetPlaylist(ctx context.Context, rawPlaylistID string, req models.PageRequest) (*models.Playlist, *models.Page[models.PlaylistVideo], error) {
	playlistID, err := parseID(rawPlaylistID, "playlist")
	if err != nil {
		return nil, nil, err
	}
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, nil, err
	}

	videos, err := pkg.Paginate[models.PlaylistVideo](s.db.WithContext(ctx), pkg.ListQuery{
		Model: &models.PlaylistVideo{},
		Filter: func(tx *gorm.DB) *gorm.DB {
			return tx.Joins("JOIN videos ON videos.id = playlist_videos.video_id").
				Where("playlist_videos.playlist_id = ?", playlistID)
		},
		Expand: func(tx *gorm.DB) *gorm.DB {
			return tx.Preload("Video.Owner")
		},
		Sort: pkg.SortByCreatedAt(false),
	}, req)
	if err != nil {
		return nil, nil, err
	}
	return playlist, videos, nil
}

func (s *PlaylistService) UpdatePlaylist(ctx context.Context, actorID uuid.UUID, rawPlaylistID string, req *models.PlaylistUpdateRequest) (*models.Playlist, error) {
	playlist, err := s.findOwnedPlaylist(ctx, actorID, rawPlaylistID, "You do not have permission to update this playlist")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return nil, appError.NewBadRequestError("Name or description is required")
	}

	if err := s.db.WithContext(ctx).Model(playlist).Omit(clause.Associations).Updates(updates).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to update playlist")
	}
	return s.getPlaylist(ctx, playlist.ID)
}

func (s *PlaylistService) DeletePlaylist(ctx context.Context, actorID uuid.UUID, rawPlaylistID string) (*models.PlaylistDeleteResult, error) {
	playlist, err := s.findOwnedPlaylist(ctx, actorID, rawPlaylistID, "You do not have permission to delete this playlist")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, "id = ?", playlist.ID).Error
	})
	if err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to delete playlist")
	}
	return &models.PlaylistDeleteResult{PlaylistID: playlist.ID}, nil
}

func (s *PlaylistService) AddVideo(ctx context.Context, actorID uuid.UUID, rawVideoID, rawPlaylistID string) (*models.Playlist, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := s.findOwnedPlaylist(ctx, actorID, rawPlaylistID, "You do not have permission to modify this playlist")
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

	if err := db.Create(&models.PlaylistVideo{PlaylistID: playlist.ID, VideoID: videoID}).Error; err != nil {
		if isDuplicate(err) {
			return nil, appError.NewConflictError("Video already exists in playlist")
		}
		return nil, appError.NewInternalServerError(err, "Failed to add video to playlist")
	}
	return s.getPlaylist(ctx, playlist.ID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID uuid.UUID, rawVideoID, rawPlaylistID string) (*models.Playlist, error) {
	videoID, err := parseID(rawVideoID, "video")
	if err != nil {
		return nil, err
	}
	playlist, err := s.findOwnedPlaylist(ctx, actorID, rawPlaylistID, "You do not have permission to modify this playlist")
	if err != nil {
		return nil, err
	}

	removed := s.db.WithContext(ctx).Where("playlist_id = ? AND video_id = ?", playlist.ID, videoID).Delete(&models.PlaylistVideo{})
	if removed.Error != nil {
		return nil, appError.NewInternalServerError(removed.Error, "Failed to remove video from playlist")
	}
	if removed.RowsAffected == 0 {
		return nil, appError.NewNotFoundError("Video not found in playlist")
	}
	return s.getPlaylist(ctx, playlist.ID)
}

func (s *PlaylistService) getPlaylist(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Entries", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		}).
		First(&playlist, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, appError.NewNotFoundError("Playlist not found")
		}
		return nil, appError.NewInternalServerError(err, "Failed to get playlist")
	}
	return &playlist, nil
}

func (s *PlaylistService) findOwnedPlaylist(ctx context.Context, actorID uuid.UUID, rawID, forbidden string) (*models.Playlist, error) {
	playlistID, err := parseID(rawID, "playlist")
	if err != nil {
		return nil, err
	}
	playlist, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(playlist.OwnerID, actorID, forbidden); err != nil {
		return nil, err
	}
	return playlist, nil
}
