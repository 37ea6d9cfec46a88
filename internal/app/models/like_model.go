package models

import (
	"github.com/google/uuid"
)

// LikeTarget names the kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like targets exactly one of video, comment or tweet. The composite unique
// indexes reject a second like by the same user on the same target; NULL
// target columns never collide.
type Like struct {
	Base
	VideoID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_video_user" json:"video,omitempty"`
	CommentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_comment_user" json:"comment,omitempty"`
	TweetID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_likes_tweet_user" json:"tweet,omitempty"`
	LikedBy   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_likes_video_user;uniqueIndex:idx_likes_comment_user;uniqueIndex:idx_likes_tweet_user" json:"likedBy"`
	Video     *Video     `gorm:"foreignKey:VideoID" json:"-"`
}

// Column returns the store column for a target kind.
func (t LikeTarget) Column() string {
	switch t {
	case LikeTargetComment:
		return "comment_id"
	case LikeTargetTweet:
		return "tweet_id"
	default:
		return "video_id"
	}
}

// Title is used in user-facing messages.
func (t LikeTarget) Title() string {
	switch t {
	case LikeTargetComment:
		return "Comment"
	case LikeTargetTweet:
		return "Tweet"
	default:
		return "Video"
	}
}

type LikeToggleResult struct {
	TargetType LikeTarget `json:"targetType"`
	TargetID   uuid.UUID  `json:"targetId"`
	LikedBy    uuid.UUID  `json:"likedBy"`
	Liked      bool       `json:"liked"`
	LikeID     *uuid.UUID `json:"likeId,omitempty"`
}

type LikedVideoList struct {
	LikedVideos      []VideoResponse `json:"likedVideos"`
	TotalLikedVideos int64           `json:"totalLikedVideos"`
	PageMeta
}

func NewLikedVideoList(p *Page[Like]) LikedVideoList {
	page := MapPage(p, func(l Like) VideoResponse {
		if l.Video == nil {
			return VideoResponse{Video: &Video{}}
		}
		return l.Video.ToResponse()
	})
	return LikedVideoList{LikedVideos: page.Items, TotalLikedVideos: page.Total, PageMeta: page.Meta}
}
