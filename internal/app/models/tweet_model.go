package models

import (
	"github.com/google/uuid"
)

// TweetMaxLength is the maximum number of characters in a tweet.
const TweetMaxLength = 280

type Tweet struct {
	Base
	Content string    `gorm:"type:varchar(280);not null" json:"content"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"-"`
}

type TweetResponse struct {
	*Tweet
	Owner any `json:"owner"`
}

func (t *Tweet) ToResponse() TweetResponse {
	if summary := t.Owner.Summary(); summary != nil {
		return TweetResponse{Tweet: t, Owner: summary}
	}
	return TweetResponse{Tweet: t, Owner: t.OwnerID}
}

type TweetRequest struct {
	Content string `json:"content" validate:"required"`
}

type TweetList struct {
	Tweets      []TweetResponse `json:"tweets"`
	TotalTweets int64           `json:"totalTweets"`
	PageMeta
}

func NewTweetList(p *Page[Tweet]) TweetList {
	page := MapPage(p, func(t Tweet) TweetResponse { return t.ToResponse() })
	return TweetList{Tweets: page.Items, TotalTweets: page.Total, PageMeta: page.Meta}
}

type TweetDeleteResult struct {
	TweetID      uuid.UUID `json:"tweetId"`
	DeletedLikes int64     `json:"deletedLikes"`
}
