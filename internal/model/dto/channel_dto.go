package dto

// CreateChannelRequest 创建频道请求
type CreateChannelRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Thumbnail   string `json:"thumbnail" binding:"omitempty,max=500"`
	Timezone    string `json:"timezone" binding:"omitempty,max=50"`
}

// UpdateChannelRequest 更新频道请求（部分字段）
type UpdateChannelRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Thumbnail   *string `json:"thumbnail,omitempty" binding:"omitempty,max=500"`
	Timezone    *string `json:"timezone,omitempty" binding:"omitempty,max=50"`
}

// ChannelDetail 频道详情（含歌单，按插入顺序）
type ChannelDetail struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Timezone    string          `json:"timezone"`
	Playlists   []*PlaylistInfo `json:"playlists"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// LiveStatus 当前直播状态（排班解析结果）
type LiveStatus struct {
	ChannelID     int64           `json:"channel_id"`
	OnAir         bool            `json:"on_air"`
	Playlist      *PlaylistInfo   `json:"playlist,omitempty"`
	OffsetMinutes int             `json:"offset_minutes,omitempty"` // 距窗口开始的分钟数
	At            string          `json:"at"`
	Conflicts     []*ConflictInfo `json:"conflicts,omitempty"`
}

// ConflictInfo 时间窗重叠信息，提示频道主修正排班
type ConflictInfo struct {
	PlaylistID      int64  `json:"playlist_id"`
	PlaylistName    string `json:"playlist_name"`
	OverlapsID      int64  `json:"overlaps_id"`
	OverlapsName    string `json:"overlaps_name"`
	OverlapStart    string `json:"overlap_start"` // HH:MM
	OverlapEnd      string `json:"overlap_end"`   // HH:MM
}
