package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	assert.NotNil(t, hub)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.Empty(t, hub.Channels())
}

func TestHub_ViewerCount_EmptyRoom(t *testing.T) {
	hub := NewHub()

	assert.Equal(t, 0, hub.ViewerCount(123))
}

func TestHub_Broadcast_NoViewers(t *testing.T) {
	hub := NewHub()

	msg := &Message{
		Type: "now_playing",
		Data: map[string]string{"key": "value"},
	}

	// Broadcasting to an empty room is not an error
	err := hub.Broadcast(123, msg)
	assert.NoError(t, err)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	c1 := &Client{ChannelID: 1, UserID: 10}
	c2 := &Client{ChannelID: 1, UserID: 0} // guest
	c3 := &Client{ChannelID: 2, UserID: 10}

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	assert.Equal(t, 2, hub.ViewerCount(1))
	assert.Equal(t, 1, hub.ViewerCount(2))
	assert.Equal(t, 3, hub.ConnectionCount())
	assert.ElementsMatch(t, []int64{1, 2}, hub.Channels())

	hub.Unregister(c2)
	assert.Equal(t, 1, hub.ViewerCount(1))

	hub.Unregister(c1)
	hub.Unregister(c3)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.Empty(t, hub.Channels())
}

func TestHub_WithRealWebSocket(t *testing.T) {
	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}

		client := &Client{
			ChannelID: 100,
			UserID:    7,
			Name:      "tester",
			Conn:      conn,
		}
		hub.Register(client)

		// Keep connection open long enough for the assertions below
		time.Sleep(300 * time.Millisecond)

		hub.Unregister(client)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Wait for registration
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, hub.ViewerCount(100))

	// Broadcast should reach the connected viewer
	err = hub.Broadcast(100, &Message{
		Type: "viewer_count",
		Data: map[string]int{"viewers": 1},
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "viewer_count", msg.Type)
}
