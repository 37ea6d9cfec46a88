package models

import (
	"github.com/google/uuid"
)

type Subscription struct {
	Base
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriptions_pair" json:"subscriber"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subscriptions_pair" json:"channel"`
	Subscriber   *User     `gorm:"foreignKey:SubscriberID" json:"-"`
	Channel      *User     `gorm:"foreignKey:ChannelID" json:"-"`
}

type SubscriptionToggleResult struct {
	ChannelID      uuid.UUID  `json:"channelId"`
	SubscriberID   uuid.UUID  `json:"subscriberId"`
	Subscribed     bool       `json:"subscribed"`
	SubscriptionID *uuid.UUID `json:"subscriptionId,omitempty"`
}

type SubscriberList struct {
	Subscribers      []*UserSummary `json:"subscribers"`
	TotalSubscribers int64          `json:"totalSubscribers"`
	PageMeta
}

func NewSubscriberList(p *Page[Subscription]) SubscriberList {
	page := MapPage(p, func(s Subscription) *UserSummary { return s.Subscriber.Summary() })
	return SubscriberList{Subscribers: page.Items, TotalSubscribers: page.Total, PageMeta: page.Meta}
}

type SubscribedChannelList struct {
	SubscribedChannels      []*UserSummary `json:"subscribedChannels"`
	TotalSubscribedChannels int64          `json:"totalSubscribedChannels"`
	PageMeta
}

func NewSubscribedChannelList(p *Page[Subscription]) SubscribedChannelList {
	page := MapPage(p, func(s Subscription) *UserSummary { return s.Channel.Summary() })
	return SubscribedChannelList{SubscribedChannels: page.Items, TotalSubscribedChannels: page.Total, PageMeta: page.Meta}
}
