package live

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tube24/tube24_go_server/internal/pkg/pubsub"
	"github.com/tube24/tube24_go_server/internal/pkg/ws"
	"github.com/tube24/tube24_go_server/internal/service"
)

// Broadcaster 直播页的服务端推送。
// 定时对有观众的频道重算排班，播出内容变化时把 now_playing / off_air
// 事件发到 Redis；订阅端再把事件转发进本机的 websocket 房间，
// 多实例部署时所有实例共享同一份事件流。
type Broadcaster struct {
	hub             *ws.Hub
	scheduleService *service.ScheduleService
	publisher       *pubsub.Publisher
	subscriber      *pubsub.Subscriber
	interval        time.Duration

	mu          sync.Mutex
	nowPlaying  map[int64]int64 // channelID -> 在播歌单 ID，0 表示停播
}

func NewBroadcaster(
	hub *ws.Hub,
	scheduleService *service.ScheduleService,
	publisher *pubsub.Publisher,
	subscriber *pubsub.Subscriber,
	tickSeconds int,
) *Broadcaster {
	if tickSeconds <= 0 {
		tickSeconds = 60
	}
	return &Broadcaster{
		hub:             hub,
		scheduleService: scheduleService,
		publisher:       publisher,
		subscriber:      subscriber,
		interval:        time.Duration(tickSeconds) * time.Second,
		nowPlaying:      make(map[int64]int64),
	}
}

// Start 启动定时重算和事件转发，阻塞直到 ctx 取消
func (b *Broadcaster) Start(ctx context.Context) {
	go b.runTicker(ctx)

	if err := b.subscriber.Subscribe(ctx, b.deliver); err != nil && ctx.Err() == nil {
		log.Printf("Live event subscription ended: %v", err)
	}
}

func (b *Broadcaster) runTicker(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Tick(ctx, time.Now())
		}
	}
}

// Tick 对所有有观众的频道重算排班，广播播出变化
func (b *Broadcaster) Tick(ctx context.Context, now time.Time) {
	for _, channelID := range b.hub.Channels() {
		status, err := b.scheduleService.Resolve(channelID, now)
		if err != nil {
			log.Printf("Schedule resolve failed for channel %d: %v", channelID, err)
			continue
		}

		var playingID int64
		if status.OnAir {
			playingID = status.Playlist.ID
		}

		if !b.transition(channelID, playingID) {
			continue
		}

		event := &pubsub.LiveEvent{
			Type:      pubsub.EventOffAir,
			ChannelID: channelID,
		}
		if status.OnAir {
			event.Type = pubsub.EventNowPlaying
			event.PlaylistID = status.Playlist.ID
			event.PlaylistName = status.Playlist.Name
			event.YoutubeListID = status.Playlist.YoutubePlaylistID
			event.OffsetMinutes = status.OffsetMinutes
		}

		if err := b.publisher.PublishLiveEvent(ctx, event); err != nil {
			log.Printf("Failed to publish live event for channel %d: %v", channelID, err)
		}
	}
}

// transition 记录频道的在播歌单，返回是否发生了变化
func (b *Broadcaster) transition(channelID, playlistID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.nowPlaying[channelID] == playlistID {
		return false
	}
	b.nowPlaying[channelID] = playlistID
	return true
}

// deliver 把 Redis 上的事件转发进本机对应的 websocket 房间
func (b *Broadcaster) deliver(event *pubsub.LiveEvent) {
	if err := b.hub.Broadcast(event.ChannelID, &ws.Message{
		Type: event.Type,
		Data: event,
	}); err != nil {
		log.Printf("Failed to deliver %s event to channel %d: %v", event.Type, event.ChannelID, err)
	}
}
