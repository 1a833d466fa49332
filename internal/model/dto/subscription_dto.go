package dto

// PlanInfo 套餐目录条目（静态目录，来自配置）
type PlanInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Period      string  `json:"period"`
	MaxChannels int     `json:"max_channels"` // 0 表示不限制
	Description string  `json:"description,omitempty"`
}

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// SubscriptionInfo 当前订阅状态
type SubscriptionInfo struct {
	Plan      string `json:"plan"`
	Status    string `json:"status"` // active, canceled, expired
	ExpiresAt string `json:"expires_at,omitempty"`
}
