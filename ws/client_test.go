package ws

import (
	"encoding/json"
	"testing"
)

func dispatchRaw(t *testing.T, c *Client, event string, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal test payload: %v", err)
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		t.Fatalf("marshal test envelope: %v", err)
	}
	c.dispatch(frame)
}

func TestDispatchRoutesEvents(t *testing.T) {
	store := &fakeStore{}
	h := newTestHub(store)
	c1 := mustRegister(t, h, "alice")
	c2 := mustRegister(t, h, "bob")
	drainEvents(t, c1)
	drainEvents(t, c2)

	dispatchRaw(t, c1, EventJoinRoom, joinRoomData{RoomID: "42"})
	dispatchRaw(t, c2, EventJoinRoom, joinRoomData{RoomID: "42"})
	dispatchRaw(t, c1, EventMessage, messageData{RoomID: "42", Content: "hi"})

	if len(store.saved) != 1 {
		t.Fatalf("message event should persist one record, got %d", len(store.saved))
	}
	if got := eventsOfType(drainEvents(t, c2), EventMessage); len(got) != 1 {
		t.Errorf("message event should reach the other member, got %d", len(got))
	}

	dispatchRaw(t, c1, EventLeaveRoom, leaveRoomData{RoomID: "42"})
	if _, ok := h.rooms["42"]["1"]; ok {
		t.Error("leave_room event should remove the membership entry")
	}
}

func TestDispatchIgnoresMalformedFrames(t *testing.T) {
	h := newTestHub(nil)
	c := mustRegister(t, h, "alice")
	drainEvents(t, c)

	c.dispatch([]byte(`not json`))
	c.dispatch([]byte(`{"event":"message","data":"not an object"}`))
	c.dispatch([]byte(`{"event":"no_such_event","data":{}}`))

	if got := drainEvents(t, c); len(got) != 0 {
		t.Errorf("malformed frames must be dropped without a reply, got %d events", len(got))
	}
	if _, ok := h.Lookup(c.ID); !ok {
		t.Error("malformed frames must not disturb the session")
	}
}

func TestDispatchEventMissingFieldsIsSilentlyDropped(t *testing.T) {
	store := &fakeStore{}
	h := newTestHub(store)
	c := mustRegister(t, h, "alice")
	drainEvents(t, c)

	dispatchRaw(t, c, EventMessage, messageData{RoomID: "", Content: "hello"})
	dispatchRaw(t, c, EventTyping, typingData{RoomID: ""})
	dispatchRaw(t, c, EventWebRTCSignal, signalData{TargetUserID: ""})

	if len(store.saved) != 0 {
		t.Errorf("events missing required fields must not persist, got %d records", len(store.saved))
	}
	if got := drainEvents(t, c); len(got) != 0 {
		t.Errorf("best-effort policy: no error events to the client, got %d", len(got))
	}
}
