package model

import (
	"time"
)

type Channel struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Thumbnail   string     `gorm:"size:500" json:"thumbnail,omitempty"`
	Timezone    string     `gorm:"size:50;default:UTC" json:"timezone"` // IANA 时区名，排班按此时区解析
	Playlists   []Playlist `gorm:"foreignKey:ChannelID" json:"playlists,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Channel) TableName() string {
	return "channels"
}
