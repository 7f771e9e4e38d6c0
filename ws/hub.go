// Package ws holds the live connection state for the chat server: which
// connection belongs to which user, which rooms a connection has joined, and
// the fan-out of presence, chat, typing, and signaling events.
package ws

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"labchat/models"
)

const (
	defaultVerifyTimeout  = 5 * time.Second
	defaultPersistTimeout = 5 * time.Second
)

// ErrUnauthenticated is returned by Register when the credential is missing,
// malformed, expired, or does not resolve to a known user.
var ErrUnauthenticated = errors.New("unauthenticated")

// CredentialVerifier validates a bearer credential and returns the subject
// username it was issued to.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, credential string) (string, error)
}

// UserResolver maps a username to its user id.
type UserResolver interface {
	ResolveUserIDByName(ctx context.Context, username string) (string, error)
}

// MessageStore durably appends chat messages.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
}

// Hub 连接管理器. All session and room state lives here, guarded by a single
// mutex; handlers do their I/O (credential verification, persistence) before
// taking the lock so no partial mutation is ever visible.
type Hub struct {
	verifier CredentialVerifier
	users    UserResolver
	store    MessageStore

	// Bounded so a slow verifier or store cannot wedge a connection.
	VerifyTimeout  time.Duration
	PersistTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Client   // connection id -> client
	byUser   map[string][]*Client // user id -> clients, in registration order
	// room id -> user id -> connection id -> client
	rooms map[string]map[string]map[string]*Client
}

// NewHub 创建连接管理器
func NewHub(verifier CredentialVerifier, users UserResolver, store MessageStore) *Hub {
	return &Hub{
		verifier:       verifier,
		users:          users,
		store:          store,
		VerifyTimeout:  defaultVerifyTimeout,
		PersistTimeout: defaultPersistTimeout,
		sessions:       make(map[string]*Client),
		byUser:         make(map[string][]*Client),
		rooms:          make(map[string]map[string]map[string]*Client),
	}
}

// Register authenticates the credential and binds the connection to the
// resolved user. On success every other connection is told the user joined and
// the new connection receives the ids of the other users currently online.
// On failure no state is touched.
func (h *Hub) Register(c *Client, credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.VerifyTimeout)
	defer cancel()

	username, err := h.verifier.VerifyCredential(ctx, credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	userID, err := h.users.ResolveUserIDByName(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%w: unknown user %q: %v", ErrUnauthenticated, username, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Re-registering a connection overwrites its previous mapping; rooms
	// joined under the old identity are released, not carried over.
	if prev, ok := h.sessions[c.ID]; ok {
		h.leaveAllRoomsLocked(prev)
		h.dropFromUserLocked(prev)
	}
	c.UserID = userID
	h.sessions[c.ID] = c
	h.byUser[userID] = append(h.byUser[userID], c)

	joined := newEvent(EventUserJoined, userPresenceData{UserID: userID})
	for _, other := range h.sessions {
		if other.ID != c.ID {
			h.trySend(other, joined)
		}
	}

	online := make([]string, 0, len(h.byUser))
	for uid := range h.byUser {
		if uid != userID {
			online = append(online, uid)
		}
	}
	sort.Strings(online)
	h.trySend(c, newEvent(EventOnlineUsers, online))

	log.Printf("Connection %s registered for user %s", c.ID, userID)
	return userID, nil
}

// Unregister removes the connection's session, leaves every room it had
// joined, and tells the remaining connections the user left. Calling it for
// an unknown connection is a no-op.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	cur, ok := h.sessions[c.ID]
	if !ok || cur != c {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, c.ID)
	h.dropFromUserLocked(c)
	h.leaveAllRoomsLocked(c)

	left := newEvent(EventUserLeft, userPresenceData{UserID: c.UserID})
	for _, other := range h.sessions {
		h.trySend(other, left)
	}
	h.mu.Unlock()

	// Nothing can reach the client anymore, so its send channel can close.
	close(c.Send)
	log.Printf("Connection %s unregistered for user %s", c.ID, c.UserID)
}

// Lookup returns the user id bound to the connection, if any.
func (h *Hub) Lookup(connectionID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.sessions[connectionID]
	if !ok {
		return "", false
	}
	return c.UserID, true
}

func (h *Hub) dropFromUserLocked(c *Client) {
	clients := h.byUser[c.UserID]
	for i, other := range clients {
		if other == c {
			h.byUser[c.UserID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.byUser[c.UserID]) == 0 {
		delete(h.byUser, c.UserID)
	}
}

// trySend queues the frame without blocking; a client with a full send buffer
// just misses the event.
func (h *Hub) trySend(c *Client, frame []byte) {
	if frame == nil {
		return
	}
	select {
	case c.Send <- frame:
	default:
		log.Printf("Send buffer full, dropping event for connection %s", c.ID)
	}
}
