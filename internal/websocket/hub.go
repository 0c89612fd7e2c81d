package activityws

import (
	"encoding/json"
	"log"
	"time"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

// Hub fans audit entries out to connected admin dashboards. The feed is
// one-way: subscribers receive entries as they are recorded and send nothing
// back.
type Hub struct {
	subscribers map[*Subscriber]struct{}
	register    chan *Subscriber
	unregister  chan *Subscriber
	entries     chan *models.Activity
}

type Subscriber struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type feedEvent struct {
	Type      string         `json:"type"`
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Action    string         `json:"action"`
	Target    *string        `json:"target,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp string         `json:"timestamp"`
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		entries:     make(chan *models.Activity, 64),
	}
}

func NewSubscriber(hub *Hub, conn *websocket.Conn) *Subscriber {
	return &Subscriber{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case subscriber := <-h.register:
			h.subscribers[subscriber] = struct{}{}
		case subscriber := <-h.unregister:
			if _, exists := h.subscribers[subscriber]; exists {
				delete(h.subscribers, subscriber)
				close(subscriber.send)
			}
		case activity := <-h.entries:
			h.deliver(activity)
		}
	}
}

func (h *Hub) Register(subscriber *Subscriber) {
	h.register <- subscriber
}

func (h *Hub) Unregister(subscriber *Subscriber) {
	h.unregister <- subscriber
}

// Publish queues an audit entry for delivery. Drops the entry when the feed
// buffer is full; the audit row itself is already persisted.
func (h *Hub) Publish(activity *models.Activity) {
	select {
	case h.entries <- activity:
	default:
	}
}

func (h *Hub) deliver(activity *models.Activity) {
	encoded, err := json.Marshal(feedEvent{
		Type:      "activity",
		ID:        activity.ID,
		UserID:    activity.UserID,
		Action:    activity.Action,
		Target:    activity.Target,
		Metadata:  activity.Metadata,
		Timestamp: activity.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("activity feed encode entry: %v", err)
		return
	}

	for subscriber := range h.subscribers {
		select {
		case subscriber.send <- encoded:
		default:
			delete(h.subscribers, subscriber)
			close(subscriber.send)
		}
	}
}

// ReadPump drains the connection until the client disconnects. Inbound
// payloads are ignored.
func (s *Subscriber) ReadPump() {
	defer func() {
		s.hub.Unregister(s)
		_ = s.conn.Close()
	}()

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Subscriber) WritePump() {
	defer func() {
		_ = s.conn.Close()
	}()

	for payload := range s.send {
		if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}
