package model

import (
	"time"
)

// DemoChannel 免注册体验频道，只存 Redis，不进数据库
type DemoChannel struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	YoutubePlaylistID string    `json:"youtube_playlist_id"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ExpiresAt 过期时刻 = 创建时刻 + ttl
func (d *DemoChannel) ExpiresAt(ttl time.Duration) time.Time {
	return d.CreatedAt.Add(ttl)
}

// Expired 边界取闭：now >= createdAt+ttl 即过期
func (d *DemoChannel) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(d.ExpiresAt(ttl))
}
