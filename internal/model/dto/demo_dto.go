package dto

// CreateDemoChannelRequest 创建体验频道请求（免认证）
type CreateDemoChannelRequest struct {
	Name              string `json:"name" binding:"required,min=1,max=100"`
	Description       string `json:"description" binding:"max=2000"`
	YoutubePlaylistID string `json:"youtube_playlist_id" binding:"required,max=500"`
}

// DemoChannelInfo 体验频道信息
type DemoChannelInfo struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	YoutubePlaylistID string `json:"youtube_playlist_id"`
	Thumbnail         string `json:"thumbnail,omitempty"`
	CreatedAt         string `json:"created_at"`
	ExpiresAt         string `json:"expires_at"`
}
