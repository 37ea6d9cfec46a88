package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaylistPreviewSize is how many thumbnails a playlist listing carries.
const PlaylistPreviewSize = 5

type Playlist struct {
	Base
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Owner       *User           `gorm:"foreignKey:OwnerID" json:"-"`
	Entries     []PlaylistVideo `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`

	// Filled by playlist listings only.
	VideoCount        int64    `gorm:"->;-:migration" json:"-"`
	PreviewThumbnails []string `gorm:"-" json:"-"`
}

// PlaylistVideo keeps playlist membership in insertion order. A video is
// in a playlist at most once.
type PlaylistVideo struct {
	Base
	PlaylistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlist_videos_pair"`
	VideoID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_playlist_videos_pair"`
	Video      *Video    `gorm:"foreignKey:VideoID"`
}

type PlaylistCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=5000"`
}

type PlaylistUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

type PlaylistResponse struct {
	*Playlist
	Owner  any         `json:"owner"`
	Videos []uuid.UUID `json:"videos"`
}

func (p *Playlist) ToResponse() PlaylistResponse {
	videos := make([]uuid.UUID, 0, len(p.Entries))
	for _, e := range p.Entries {
		videos = append(videos, e.VideoID)
	}
	resp := PlaylistResponse{Playlist: p, Owner: p.OwnerID, Videos: videos}
	if summary := p.Owner.Summary(); summary != nil {
		resp.Owner = summary
	}
	return resp
}

type PlaylistSummary struct {
	PlaylistResponse
	VideoCount        int64    `json:"videoCount"`
	PreviewThumbnails []string `json:"previewThumbnails"`
}

func (p *Playlist) ToSummary() PlaylistSummary {
	thumbnails := p.PreviewThumbnails
	if len(thumbnails) > PlaylistPreviewSize {
		thumbnails = thumbnails[:PlaylistPreviewSize]
	}
	if thumbnails == nil {
		thumbnails = []string{}
	}
	return PlaylistSummary{
		PlaylistResponse:  p.ToResponse(),
		VideoCount:        p.VideoCount,
		PreviewThumbnails: thumbnails,
	}
}

type PlaylistList struct {
	Playlists      []PlaylistSummary `json:"playlists"`
	TotalPlaylists int64             `json:"totalPlaylists"`
	PageMeta
}

func NewPlaylistList(p *Page[Playlist]) PlaylistList {
	page := MapPage(p, func(pl Playlist) PlaylistSummary { return pl.ToSummary() })
	return PlaylistList{Playlists: page.Items, TotalPlaylists: page.Total, PageMeta: page.Meta}
}

// PlaylistVideoList is the paginated video section of a single playlist.
type PlaylistVideoList struct {
	Videos      []VideoResponse `json:"videos"`
	TotalVideos int64           `json:"totalVideos"`
	PageMeta
}

type PlaylistDetail struct {
	ID          uuid.UUID         `json:"_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Owner       any               `json:"owner"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Videos      PlaylistVideoList `json:"videos"`
}

func NewPlaylistDetail(p *Playlist, videos *Page[PlaylistVideo]) PlaylistDetail {
	page := MapPage(videos, func(e PlaylistVideo) VideoResponse {
		if e.Video == nil {
			return VideoResponse{Video: &Video{}}
		}
		return e.Video.ToResponse()
	})
	resp := p.ToResponse()
	return PlaylistDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       resp.Owner,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Videos: PlaylistVideoList{
			Videos:      page.Items,
			TotalVideos: page.Total,
			PageMeta:    page.Meta,
		},
	}
}

type PlaylistDeleteResult struct {
	PlaylistID uuid.UUID `json:"playlistId"`
}
