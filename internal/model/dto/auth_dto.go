package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息（返回给前端，不含密码）
type UserInfo struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email,omitempty"`
	Name               string `json:"name"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	Plan               string `json:"plan"`
	SubscriptionStatus string `json:"subscription_status"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// UpdateProfileRequest 更新用户信息请求
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" binding:"omitempty,max=500"`
}
