package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event kinds pushed to connected clients.
const (
	EventSignedIn  = "auth.signed_in"
	EventSignedOut = "auth.signed_out"
	EventMealSaved = "meal.saved"
)

type Event struct {
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// Publisher is what services need from the hub.
type Publisher interface {
	Publish(userID string, ev Event)
}

type WSClient struct {
	UserID string
	Conn   *websocket.Conn
	wmu    sync.Mutex
}

// Write serializes writes; gorilla connections allow one writer at a time.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.Conn.WriteMessage(messageType, data)
}

type EventHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
	log     *zap.Logger
}

var _ Publisher = (*EventHub)(nil)

func NewEventHub(log *zap.Logger) *EventHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventHub{clients: make(map[string]map[*WSClient]struct{}), log: log}
}

func (h *EventHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *EventHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Connected reports how many sockets userID has open.
func (h *EventHub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *EventHub) Publish(userID string, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("event marshal failed", zap.String("kind", ev.Kind), zap.Error(err))
		return
	}

	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Write(websocket.TextMessage, msg); err != nil {
			h.log.Debug("dropping websocket client", zap.String("uid", userID), zap.Error(err))
			h.Unregister(c)
		}
	}
}
