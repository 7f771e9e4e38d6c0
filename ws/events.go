package ws

import (
	"encoding/json"
	"log"
)

// Client-originated event names.
const (
	EventJoinRoom     = "join_room"
	EventLeaveRoom    = "leave_room"
	EventMessage      = "message"
	EventTyping       = "typing"
	EventWebRTCSignal = "webrtc_signal"
)

// Server-originated event names.
const (
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventOnlineUsers    = "online_users"
	EventUserJoinedRoom = "user_joined_room"
	EventUserLeftRoom   = "user_left_room"
)

// Envelope is the wire frame used in both directions: an event name plus an
// event-specific data payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type joinRoomData struct {
	RoomID string `json:"room_id"`
}

type leaveRoomData struct {
	RoomID string `json:"room_id"`
}

type messageData struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}

type typingData struct {
	RoomID   string `json:"room_id"`
	IsTyping bool   `json:"is_typing"`
}

type signalData struct {
	TargetUserID string          `json:"target_user_id"`
	Signal       json.RawMessage `json:"signal"`
}

type userPresenceData struct {
	UserID string `json:"user_id"`
}

type roomPresenceData struct {
	UserID string `json:"user_id"`
	RoomID string `json:"room_id"`
}

type messageBroadcastData struct {
	RoomID     string `json:"room_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

type typingBroadcastData struct {
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	IsTyping bool   `json:"is_typing"`
}

type signalBroadcastData struct {
	FromUserID string          `json:"from_user_id"`
	Signal     json.RawMessage `json:"signal"`
}

// newEvent marshals an outbound envelope. Payload types are all local and
// marshal cleanly, so an error here indicates a programming mistake.
func newEvent(event string, data interface{}) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", event, err)
		return nil
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		log.Printf("Failed to marshal %s envelope: %v", event, err)
		return nil
	}
	return frame
}
