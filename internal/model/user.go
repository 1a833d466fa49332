package model

import (
	"time"
)

type User struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	Email              *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	Name               string     `gorm:"size:100;not null" json:"name"`
	PasswordHash       *string    `gorm:"size:255" json:"-"`
	GithubID           *string    `gorm:"column:github_id;size:50;uniqueIndex" json:"-"`
	AvatarURL          string     `gorm:"size:500" json:"avatar_url"`
	Plan               string     `gorm:"size:20;default:free" json:"plan"`                         // free, pro, business
	SubscriptionStatus string     `gorm:"size:20;default:active" json:"subscription_status"`        // active, canceled, expired
	SubscriptionEndsAt *time.Time `gorm:"index" json:"subscription_ends_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
