package model

import (
	"time"
)

// Playlist 一个频道下的排班单元：引用外部 YouTube 歌单，附带每日播出时间窗。
// StartMinute/EndMinute 为当天 0 点起的分钟数（0..1439）；EndMinute 为空表示播到午夜，
// EndMinute < StartMinute 表示跨午夜。
type Playlist struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	ChannelID         int64     `gorm:"not null;index" json:"channel_id"`
	YoutubePlaylistID string    `gorm:"column:youtube_playlist_id;size:100;not null" json:"youtube_playlist_id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	StartMinute       int       `gorm:"column:start_time;not null" json:"start_time"`
	EndMinute         *int      `gorm:"column:end_time" json:"end_time,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Playlist) TableName() string {
	return "playlists"
}
