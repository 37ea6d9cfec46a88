package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Durations and totals are sent as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Video struct {
	Base
	VideoFile             string          `gorm:"type:text;not null" json:"videoFile"`
	VideoFilePublicID     string          `gorm:"type:varchar(255)" json:"videoFilePublicId,omitempty"`
	VideoFileResourceType string          `gorm:"type:varchar(16);default:video" json:"videoFileResourceType,omitempty"`
	Thumbnail             string          `gorm:"type:text;not null" json:"thumbnail"`
	ThumbnailPublicID     string          `gorm:"type:varchar(255)" json:"thumbnailPublicId,omitempty"`
	ThumbnailResourceType string          `gorm:"type:varchar(16);default:image" json:"thumbnailResourceType,omitempty"`
	Title                 string          `gorm:"type:varchar(255);not null;index" json:"title"`
	Description           string          `gorm:"type:text;not null" json:"description"`
	Duration              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"duration"`
	Views                 int64           `gorm:"not null;default:0" json:"views"`
	IsPublished           bool            `gorm:"not null;default:true" json:"isPublished"`
	OwnerID               uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Owner                 *User           `gorm:"foreignKey:OwnerID" json:"-"`
}

// VideoResponse is a video with its owner projected.
type VideoResponse struct {
	*Video
	Owner any `json:"owner"`
}

// ToResponse embeds the owner summary when it was loaded and falls back to
// the bare owner id otherwise.
func (v *Video) ToResponse() VideoResponse {
	if summary := v.Owner.Summary(); summary != nil {
		return VideoResponse{Video: v, Owner: summary}
	}
	return VideoResponse{Video: v, Owner: v.OwnerID}
}

// VideoCreateRequest carries the text fields of the multipart publish form.
type VideoCreateRequest struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"required,max=5000"`
	Duration    string `form:"duration" validate:"required,numeric"`
}

type VideoUpdateRequest struct {
	Title       *string `form:"title" json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string `form:"description" json:"description,omitempty" validate:"omitempty,max=5000"`
}

// VideoListFilter holds the validated query string of GET /videos.
type VideoListFilter struct {
	Query    string
	SortBy   string
	SortType string
	UserID   *uuid.UUID
}

type VideoList struct {
	Videos      []VideoResponse `json:"videos"`
	TotalVideos int64           `json:"totalVideos"`
	PageMeta
}

func NewVideoList(p *Page[Video]) VideoList {
	page := MapPage(p, func(v Video) VideoResponse { return v.ToResponse() })
	return VideoList{Videos: page.Items, TotalVideos: page.Total, PageMeta: page.Meta}
}

type VideoPublishStatus struct {
	VideoID     uuid.UUID `json:"videoId"`
	IsPublished bool      `json:"isPublished"`
}

type VideoDeleteResult struct {
	DeletedVideoID       uuid.UUID `json:"deletedVideoId"`
	VideoFileAssetStatus string    `json:"videoFileAssetStatus"`
	ThumbnailAssetStatus string    `json:"thumbnailAssetStatus"`
	DeletedComments      int64     `json:"deletedComments"`
	DeletedLikes         int64     `json:"deletedLikes"`
}

const (
	AssetStatusProcessed = "processed"
	AssetStatusFailed    = "failed_or_not_found"
)
