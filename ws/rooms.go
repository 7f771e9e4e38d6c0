package ws

import "log"

// JoinRoom adds the connection under (room, user) and announces it to the
// connections already in the room. A connection without a session is ignored.
func (h *Hub) JoinRoom(c *Client, roomID string) {
	if roomID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[c.ID]; !ok {
		return
	}

	room := h.rooms[roomID]
	if room == nil {
		room = make(map[string]map[string]*Client)
		h.rooms[roomID] = room
	}
	conns := room[c.UserID]
	if conns == nil {
		conns = make(map[string]*Client)
		room[c.UserID] = conns
	}
	conns[c.ID] = c
	c.rooms[roomID] = true

	frame := newEvent(EventUserJoinedRoom, roomPresenceData{UserID: c.UserID, RoomID: roomID})
	h.broadcastRoomLocked(roomID, c.ID, frame)
	log.Printf("User %s joined room %s on connection %s", c.UserID, roomID, c.ID)
}

// LeaveRoom removes the connection from (room, user), pruning the user entry
// and the room entry the moment they empty, and announces the departure to the
// remaining members. Leaving a room the connection is not in is a no-op.
func (h *Hub) LeaveRoom(c *Client, roomID string) {
	if roomID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[c.ID]; !ok {
		return
	}
	if !h.removeFromRoomLocked(c, roomID) {
		return
	}
	frame := newEvent(EventUserLeftRoom, roomPresenceData{UserID: c.UserID, RoomID: roomID})
	h.broadcastRoomLocked(roomID, c.ID, frame)
}

// removeFromRoomLocked drops the connection from the room's tables and reports
// whether it was a member. Emptied (room,user) and room entries are removed
// immediately so no entry ever holds an empty set.
func (h *Hub) removeFromRoomLocked(c *Client, roomID string) bool {
	room := h.rooms[roomID]
	if room == nil {
		return false
	}
	conns := room[c.UserID]
	if conns == nil {
		return false
	}
	if _, ok := conns[c.ID]; !ok {
		return false
	}
	delete(conns, c.ID)
	delete(c.rooms, roomID)
	if len(conns) == 0 {
		delete(room, c.UserID)
	}
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
	return true
}

// leaveAllRoomsLocked is the disconnect cleanup step: the dying connection
// leaves every room it had joined so the membership tables never hold dead
// connection ids.
func (h *Hub) leaveAllRoomsLocked(c *Client) {
	for roomID := range c.rooms {
		if !h.removeFromRoomLocked(c, roomID) {
			continue
		}
		frame := newEvent(EventUserLeftRoom, roomPresenceData{UserID: c.UserID, RoomID: roomID})
		h.broadcastRoomLocked(roomID, c.ID, frame)
	}
}

// broadcastRoomLocked queues the frame for every connection in the room except
// skipConnID. Callers hold h.mu.
func (h *Hub) broadcastRoomLocked(roomID, skipConnID string, frame []byte) {
	for _, conns := range h.rooms[roomID] {
		for _, member := range conns {
			if member.ID != skipConnID {
				h.trySend(member, frame)
			}
		}
	}
}
