package models

import (
	"github.com/google/uuid"
)

type Comment struct {
	Base
	Content string    `gorm:"type:text;not null" json:"content"`
	VideoID uuid.UUID `gorm:"type:uuid;not null;index" json:"video"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"-"`
}

type CommentResponse struct {
	*Comment
	Owner any `json:"owner"`
}

func (c *Comment) ToResponse() CommentResponse {
	if summary := c.Owner.Summary(); summary != nil {
		return CommentResponse{Comment: c, Owner: summary}
	}
	return CommentResponse{Comment: c, Owner: c.OwnerID}
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type CommentList struct {
	Comments      []CommentResponse `json:"comments"`
	TotalComments int64             `json:"totalComments"`
	PageMeta
}

func NewCommentList(p *Page[Comment]) CommentList {
	page := MapPage(p, func(c Comment) CommentResponse { return c.ToResponse() })
	return CommentList{Comments: page.Items, TotalComments: page.Total, PageMeta: page.Meta}
}

type CommentDeleteResult struct {
	DeletedCommentID uuid.UUID `json:"deletedCommentId"`
	DeletedLikes     int64     `json:"deletedLikes"`
}
