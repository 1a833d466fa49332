package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tube24/tube24_go_server/internal/pkg/jwt"
	"github.com/tube24/tube24_go_server/internal/pkg/pubsub"
	"github.com/tube24/tube24_go_server/internal/pkg/ws"
	"github.com/tube24/tube24_go_server/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要验证 Origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const maxChatLength = 500

type WebSocketHandler struct {
	hub         *ws.Hub
	authService *service.AuthService
	publisher   *pubsub.Publisher
	jwtSecret   string
}

func NewWebSocketHandler(
	hub *ws.Hub,
	authService *service.AuthService,
	publisher *pubsub.Publisher,
	jwtSecret string,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		publisher:   publisher,
		jwtSecret:   jwtSecret,
	}
}

// chatInbound 客户端发来的聊天消息
type chatInbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handle 直播页 WebSocket 连接
// GET /api/v1/ws?channel_id=N&token=xxx
// token 可选：带 token 以本名聊天，不带则以游客身份观看
func (h *WebSocketHandler) Handle(c *gin.Context) {
	channelID, err := strconv.ParseInt(c.Query("channel_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid channel_id"})
		return
	}

	var userID int64
	name := "Guest"
	if token := c.Query("token"); token != "" {
		claims, err := jwt.ParseToken(token, h.jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID = claims.UserID
		if user, err := h.authService.GetUserByID(userID); err == nil {
			name = user.Name
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &ws.Client{
		ChannelID: channelID,
		UserID:    userID,
		Name:      name,
		Conn:      conn,
	}

	h.hub.Register(client)
	h.publishViewerCount(channelID)

	go h.readLoop(client)
}

// readLoop 读取客户端消息：聊天转发，其余忽略；连接断开即退场
func (h *WebSocketHandler) readLoop(client *ws.Client) {
	defer func() {
		h.hub.Unregister(client)
		h.publishViewerCount(client.ChannelID)
		client.Conn.Close()
	}()

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			return
		}

		var inbound chatInbound
		if err := json.Unmarshal(data, &inbound); err != nil {
			continue
		}
		if inbound.Type != pubsub.EventChat {
			continue
		}

		message := strings.TrimSpace(inbound.Message)
		if message == "" {
			continue
		}
		if len(message) > maxChatLength {
			message = message[:maxChatLength]
		}

		event := &pubsub.LiveEvent{
			Type:      pubsub.EventChat,
			ChannelID: client.ChannelID,
			UserName:  client.Name,
			Message:   message,
		}
		if err := h.publisher.PublishLiveEvent(context.Background(), event); err != nil {
			log.Printf("Failed to publish chat for channel %d: %v", client.ChannelID, err)
		}
	}
}

func (h *WebSocketHandler) publishViewerCount(channelID int64) {
	event := &pubsub.LiveEvent{
		Type:      pubsub.EventViewerCount,
		ChannelID: channelID,
		Viewers:   h.hub.ViewerCount(channelID),
	}
	if err := h.publisher.PublishLiveEvent(context.Background(), event); err != nil {
		log.Printf("Failed to publish viewer count for channel %d: %v", channelID, err)
	}
}
