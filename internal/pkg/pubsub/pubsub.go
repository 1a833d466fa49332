package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelLiveEvents = "live_events"
)

// 事件类型常量
const (
	EventNowPlaying  = "now_playing"
	EventOffAir      = "off_air"
	EventViewerCount = "viewer_count"
	EventChat        = "chat"
)

// LiveEvent 直播页事件，经 Redis 广播给所有服务实例
type LiveEvent struct {
	Type          string `json:"type"`
	ChannelID     int64  `json:"channel_id"`
	PlaylistID    int64  `json:"playlist_id,omitempty"`
	PlaylistName  string `json:"playlist_name,omitempty"`
	YoutubeListID string `json:"youtube_playlist_id,omitempty"`
	OffsetMinutes int    `json:"offset_minutes,omitempty"`
	Viewers       int    `json:"viewers,omitempty"`
	UserName      string `json:"user_name,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishLiveEvent 发布直播事件
func (p *Publisher) PublishLiveEvent(ctx context.Context, event *LiveEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal live event: %w", err)
	}

	return p.client.Publish(ctx, ChannelLiveEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅直播事件，阻塞直到 ctx 取消
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*LiveEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelLiveEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event LiveEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
