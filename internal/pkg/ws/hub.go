package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub 按频道分房间管理观众连接。
// 同一个观众可以开多个标签页，每个连接独立计数（观众数即房间连接数）。
type Hub struct {
	rooms map[int64]map[*Client]struct{}
	mu    sync.RWMutex
}

type Client struct {
	ChannelID int64
	UserID    int64  // 0 表示游客
	Name      string // 聊天显示名
	Conn      *websocket.Conn
	mu        sync.Mutex // 写锁，防止并发写入
}

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[client.ChannelID] == nil {
		h.rooms[client.ChannelID] = make(map[*Client]struct{})
	}
	h.rooms[client.ChannelID][client] = struct{}{}

	log.Printf("Viewer joined channel %d, room_size: %d", client.ChannelID, len(h.rooms[client.ChannelID]))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[client.ChannelID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.ChannelID)
		}
	}
	log.Printf("Viewer left channel %d", client.ChannelID)
}

// Broadcast 向一个频道房间内的所有连接发送消息
func (h *Hub) Broadcast(channelID int64, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	h.mu.RLock()
	room, ok := h.rooms[channelID]
	if !ok {
		h.mu.RUnlock()
		return nil
	}
	// 复制一份引用，避免长时间持锁
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		err := c.Conn.WriteMessage(websocket.TextMessage, data)
		c.mu.Unlock()
		if err != nil {
			log.Printf("Broadcast write error for channel %d: %v", channelID, err)
		}
	}
	return nil
}

// ViewerCount 获取频道当前观众数
func (h *Hub) ViewerCount(channelID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[channelID])
}

// Channels 返回当前有观众的频道列表
func (h *Hub) Channels() []int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]int64, 0, len(h.rooms))
	for id := range h.rooms {
		ids = append(ids, id)
	}
	return ids
}

// ConnectionCount 获取在线连接总数
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, room := range h.rooms {
		total += len(room)
	}
	return total
}
