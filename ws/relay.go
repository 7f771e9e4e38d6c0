package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"labchat/models"
)

// SendMessage persists a chat message and fans it out to the other members of
// the room. Events missing a session, room, or content are dropped without an
// error to the sender; a failed write is logged and the broadcast skipped.
func (h *Hub) SendMessage(c *Client, roomID, content string) {
	if roomID == "" || content == "" {
		return
	}
	if _, ok := h.Lookup(c.ID); !ok {
		return
	}

	msg := &models.Message{
		RoomID:      roomID,
		SenderID:    c.UserID,
		ReceiverID:  roomID,
		Content:     content,
		MessageType: "text",
		IsRead:      false,
		Timestamp:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.PersistTimeout)
	defer cancel()
	saved, err := h.store.SaveMessage(ctx, msg)
	if err != nil {
		log.Printf("Failed to persist message from user %s in room %s: %v", c.UserID, roomID, err)
		return
	}

	// receiver_id on the wire carries the sender's user id; the stored record
	// keeps the room id in that column.
	frame := newEvent(EventMessage, messageBroadcastData{
		RoomID:     roomID,
		ReceiverID: c.UserID,
		Content:    content,
		Timestamp:  saved.Timestamp.Format(time.RFC3339),
	})

	h.mu.RLock()
	h.broadcastRoomLocked(roomID, c.ID, frame)
	h.mu.RUnlock()
}

// NotifyTyping relays the typing state to the other members of the room.
// Nothing is stored and no acknowledgment is sent.
func (h *Hub) NotifyTyping(c *Client, roomID string, isTyping bool) {
	if roomID == "" {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.sessions[c.ID]; !ok {
		return
	}
	frame := newEvent(EventTyping, typingBroadcastData{
		RoomID:   roomID,
		UserID:   c.UserID,
		IsTyping: isTyping,
	})
	h.broadcastRoomLocked(roomID, c.ID, frame)
}

// RelaySignal delivers an opaque negotiation payload to the target user's
// earliest-registered connection. An offline target is a silent no-op.
// Only one of the target's connections receives the signal even when the user
// is connected from several devices.
func (h *Hub) RelaySignal(c *Client, targetUserID string, signal json.RawMessage) {
	if targetUserID == "" || len(signal) == 0 {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.sessions[c.ID]; !ok {
		return
	}
	targets := h.byUser[targetUserID]
	if len(targets) == 0 {
		return
	}
	frame := newEvent(EventWebRTCSignal, signalBroadcastData{
		FromUserID: c.UserID,
		Signal:     signal,
	})
	h.trySend(targets[0], frame)
}
