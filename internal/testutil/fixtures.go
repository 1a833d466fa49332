package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tube24/tube24_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Email:              &email,
		Name:               fmt.Sprintf("Test User %d", time.Now().UnixNano()%10000),
		PasswordHash:       &passwordHash,
		Plan:               "free",
		SubscriptionStatus: "active",
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithName 设置用户名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// WithPlan 设置套餐
func WithPlan(plan string) func(*model.User) {
	return func(u *model.User) {
		u.Plan = plan
	}
}

// WithSubscriptionEndsAt 设置订阅到期时间
func WithSubscriptionEndsAt(at time.Time) func(*model.User) {
	return func(u *model.User) {
		u.SubscriptionEndsAt = &at
	}
}

// TestChannel 创建测试频道
func TestChannel(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Channel)) *model.Channel {
	t.Helper()

	channel := &model.Channel{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Channel %d", time.Now().UnixNano()%10000),
		Description: "test channel",
		Timezone:    "UTC",
	}

	for _, opt := range opts {
		opt(channel)
	}

	if err := db.Create(channel).Error; err != nil {
		t.Fatalf("Failed to create test channel: %v", err)
	}

	return channel
}

// WithChannelName 设置频道名
func WithChannelName(name string) func(*model.Channel) {
	return func(c *model.Channel) {
		c.Name = name
	}
}

// WithTimezone 设置频道时区
func WithTimezone(tz string) func(*model.Channel) {
	return func(c *model.Channel) {
		c.Timezone = tz
	}
}

// TestPlaylist 创建测试歌单
func TestPlaylist(t *testing.T, db *gorm.DB, channelID int64, opts ...func(*model.Playlist)) *model.Playlist {
	t.Helper()

	playlist := &model.Playlist{
		ChannelID:         channelID,
		YoutubePlaylistID: "PLtest123",
		Name:              fmt.Sprintf("Test Playlist %d", time.Now().UnixNano()%10000),
		StartMinute:       9 * 60, // 09:00
	}

	for _, opt := range opts {
		opt(playlist)
	}

	if err := db.Create(playlist).Error; err != nil {
		t.Fatalf("Failed to create test playlist: %v", err)
	}

	return playlist
}

// WithWindow 设置播出时间窗（分钟数）
func WithWindow(startMinute int, endMinute *int) func(*model.Playlist) {
	return func(p *model.Playlist) {
		p.StartMinute = startMinute
		p.EndMinute = endMinute
	}
}

// WithYoutubeID 设置 YouTube 歌单 ID
func WithYoutubeID(id string) func(*model.Playlist) {
	return func(p *model.Playlist) {
		p.YoutubePlaylistID = id
	}
}

// Minutes 返回指向分钟数的指针，测试里写窗口用
func Minutes(m int) *int {
	return &m
}
