package model

import (
	"time"
)

type Subscription struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	Plan      string     `gorm:"size:20;not null" json:"plan"` // pro, business
	Amount    float64    `gorm:"type:decimal(10,2)" json:"amount,omitempty"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	Status    string     `gorm:"size:20;default:active;index" json:"status"` // active, canceled, expired
	CreatedAt time.Time  `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
