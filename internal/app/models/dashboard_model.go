package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ChannelStats struct {
	ChannelID        uuid.UUID       `json:"channelId"`
	TotalVideos      int64           `json:"totalVideos"`
	TotalSubscribers int64           `json:"totalSubscribers"`
	TotalViews       int64           `json:"totalViews"`
	TotalLikes       int64           `json:"totalLikes"`
	TotalDuration    decimal.Decimal `json:"totalDuration"`
}

// ChannelVideoList is the owner's view of their uploads, unpublished
// included.
type ChannelVideoList struct {
	Videos      []*Video `json:"videos"`
	TotalVideos int64    `json:"totalVideos"`
	PageMeta
}

func NewChannelVideoList(p *Page[Video]) ChannelVideoList {
	page := MapPage(p, func(v Video) *Video { return &v })
	return ChannelVideoList{Videos: page.Items, TotalVideos: page.Total, PageMeta: page.Meta}
}
