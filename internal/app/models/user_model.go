package models

import (
	"github.com/google/uuid"
)

type User struct {
	Base
	UserName           string `gorm:"type:varchar(64);uniqueIndex;not null" json:"userName"`
	Email              string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName           string `gorm:"type:varchar(255);not null" json:"fullName"`
	Avatar             string `gorm:"type:text;not null" json:"avatar"`
	AvatarPublicID     string `gorm:"type:varchar(255)" json:"-"`
	CoverImage         string `gorm:"type:text" json:"coverImage"`
	CoverImagePublicID string `gorm:"type:varchar(255)" json:"-"`
	Password           string `gorm:"type:varchar(255);not null" json:"-"`
	RefreshToken       string `gorm:"type:text" json:"-"`
}

// UserSummary is the projection embedded in other resources.
type UserSummary struct {
	ID       uuid.UUID `json:"_id"`
	UserName string    `json:"userName"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

func (u *User) Summary() *UserSummary {
	if u == nil || u.ID == uuid.Nil {
		return nil
	}
	return &UserSummary{
		ID:       u.ID,
		UserName: u.UserName,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

type UserRegisterRequest struct {
	FullName string `form:"fullName" json:"fullName" validate:"required,max=255"`
	UserName string `form:"userName" json:"userName" validate:"required,min=3,max=64,alphanum"`
	Email    string `form:"email" json:"email" validate:"required,email,max=255"`
	Password string `form:"password" json:"password" validate:"required,min=8,max=72"`
}

// UserLoginRequest accepts either identifier.
type UserLoginRequest struct {
	UserName string `json:"userName" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=UserName,omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72,nefield=OldPassword"`
}

type UserUpdateRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User *User `json:"user"`
	AuthTokens
}

type ChannelProfile struct {
	*User
	SubscribersCount          int64 `json:"subscribersCount"`
	ChannelsSubscribedToCount int64 `json:"channelsSubscribedToCount"`
	IsSubscribed              bool  `json:"isSubscribed"`
}
