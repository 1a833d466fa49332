package dto

// CreatePlaylistRequest 创建歌单请求。
// YoutubePlaylistID 可以是裸 ID，也可以是完整歌单 URL（取 list= 参数）。
// StartTime/EndTime 为 "HH:MM" 当日时刻，EndTime 可空。
type CreatePlaylistRequest struct {
	ChannelID         int64  `json:"channel_id" binding:"required"`
	YoutubePlaylistID string `json:"youtube_playlist_id" binding:"required,max=500"`
	Name              string `json:"name" binding:"required,min=1,max=100"`
	Description       string `json:"description" binding:"max=2000"`
	StartTime         string `json:"start_time" binding:"required"`
	EndTime           string `json:"end_time" binding:"omitempty"`
}

// UpdatePlaylistRequest 更新歌单请求（部分字段）
type UpdatePlaylistRequest struct {
	YoutubePlaylistID *string `json:"youtube_playlist_id,omitempty" binding:"omitempty,max=500"`
	Name              *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description       *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	StartTime         *string `json:"start_time,omitempty"`
	EndTime           *string `json:"end_time,omitempty"` // 传空字符串表示清除结束时间
}

// PlaylistInfo 歌单信息
type PlaylistInfo struct {
	ID                int64  `json:"id"`
	ChannelID         int64  `json:"channel_id"`
	YoutubePlaylistID string `json:"youtube_playlist_id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	StartTime         string `json:"start_time"`         // HH:MM
	EndTime           string `json:"end_time,omitempty"` // HH:MM，空表示播到午夜
	CreatedAt         string `json:"created_at"`
}

// PlaylistResponse 创建/更新歌单的响应，附带新窗口引入的排班冲突
type PlaylistResponse struct {
	Playlist  *PlaylistInfo   `json:"playlist"`
	Conflicts []*ConflictInfo `json:"conflicts,omitempty"`
}
