package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
)

// Client 代表一个 WebSocket 客户端连接
type Client struct {
	ID     string // connection id
	UserID string // set by Hub.Register
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub
	// rooms this connection has joined, guarded by hub.mu
	rooms map[string]bool
}

// NewClient wraps an upgraded connection with a fresh connection id. The
// client carries no user identity until Hub.Register succeeds.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.New().String(),
		Conn:  conn,
		Send:  make(chan []byte, 256),
		hub:   hub,
		rooms: make(map[string]bool),
	}
}

// Start launches the read and write pumps. Call only after a successful
// Register; an unauthenticated connection is closed instead.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Error setting read deadline for %s: %v", c.ID, err)
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close on connection %s: %v", c.ID, err)
			}
			break
		}
		c.dispatch(raw)
	}
}

// dispatch routes one inbound frame to its handler. A panic in a handler is
// caught here so a bad event can never take down the read loop or touch other
// connections; the only error ever surfaced to the client is the connect-time
// rejection.
func (c *Client) dispatch(raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic handling event on connection %s: %v", c.ID, r)
		}
	}()

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Invalid frame from connection %s: %v", c.ID, err)
		return
	}

	switch env.Event {
	case EventJoinRoom:
		var data joinRoomData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		c.hub.JoinRoom(c, data.RoomID)
	case EventLeaveRoom:
		var data leaveRoomData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		c.hub.LeaveRoom(c, data.RoomID)
	case EventMessage:
		var data messageData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		c.hub.SendMessage(c, data.RoomID, data.Content)
	case EventTyping:
		var data typingData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		c.hub.NotifyTyping(c, data.RoomID, data.IsTyping)
	case EventWebRTCSignal:
		var data signalData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return
		}
		c.hub.RelaySignal(c, data.TargetUserID, data.Signal)
	default:
		log.Printf("Unknown event %q from connection %s", env.Event, c.ID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
