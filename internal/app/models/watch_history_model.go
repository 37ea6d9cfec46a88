package models

import (
	"github.com/google/uuid"
)

// WatchHistory holds one row per user and video. UpdatedAt is the time of
// the latest view.
type WatchHistory struct {
	Base
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_watch_histories_pair" json:"user"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_watch_histories_pair" json:"video"`
	Video   *Video    `gorm:"foreignKey:VideoID" json:"-"`
}

type WatchHistoryList struct {
	WatchHistory []VideoResponse `json:"watchHistory"`
	TotalWatched int64           `json:"totalWatched"`
	PageMeta
}

func NewWatchHistoryList(p *Page[WatchHistory]) WatchHistoryList {
	page := MapPage(p, func(w WatchHistory) VideoResponse {
		if w.Video == nil {
			return VideoResponse{Video: &Video{}}
		}
		return w.Video.ToResponse()
	})
	return WatchHistoryList{WatchHistory: page.Items, TotalWatched: page.Total, PageMeta: page.Meta}
}
