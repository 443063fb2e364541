// Package ws pushes changed cells to browser clients over websockets.
package ws

import (
	"context"
	"encoding/json"
	"log"
	nethttp "net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"minerworld/internal/app/ports"
)

const writeWait = 5 * time.Second

// SnapshotFunc returns the full grid a new subscriber starts from.
type SnapshotFunc func(ctx context.Context) ports.ChangeFrame

type HubConfig struct {
	Logger   *log.Logger
	Snapshot SnapshotFunc
	// AllowedOrigin is the browser origin accepted on upgrade; empty allows
	// any. Requests without an Origin header are always accepted.
	AllowedOrigin string
}

// message is the wire form of a frame. Type is "snapshot" for the first
// message on a connection and "frame" afterwards.
type message struct {
	Type  string       `json:"type"`
	Tick  int64        `json:"tick"`
	Cells []ports.Cell `json:"cells"`
}

// subscriber queues frames until its snapshot has been written.
type subscriber struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	ready   bool
	pending [][]byte
}

func (s *subscriber) write(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *subscriber) deliver(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		s.pending = append(s.pending, data)
		return nil
	}
	return s.write(data)
}

// start writes the snapshot, then every frame queued since registration.
func (s *subscriber) start(snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot != nil {
		if err := s.write(snapshot); err != nil {
			return err
		}
	}
	for _, data := range s.pending {
		if err := s.write(data); err != nil {
			return err
		}
	}
	s.pending = nil
	s.ready = true
	return nil
}

// Hub fans change frames out to every connected subscriber.
type Hub struct {
	logger   *log.Logger
	snapshot SnapshotFunc
	upgrader websocket.Upgrader

	// publishMu keeps frames in call order across subscribers.
	publishMu sync.Mutex

	mu          sync.Mutex
	nextID      uint64
	subscribers map[uint64]*subscriber
}

func NewHub(cfg HubConfig) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	allowed := strings.TrimSpace(cfg.AllowedOrigin)
	return &Hub{
		logger:   logger,
		snapshot: cfg.Snapshot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return originAllowed(allowed, r.Header.Get("Origin"))
			},
		},
		subscribers: make(map[uint64]*subscriber),
	}
}

func originAllowed(allowed, origin string) bool {
	return allowed == "" || allowed == "*" || origin == "" || origin == allowed
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish implements ports.ChangeStream. Subscribers whose write fails are
// dropped.
func (h *Hub) Publish(frame ports.ChangeFrame) {
	data, err := json.Marshal(message{Type: "frame", Tick: frame.Tick, Cells: frame.Cells})
	if err != nil {
		h.logger.Printf("failed to marshal frame: tick=%d err=%v", frame.Tick, err)
		return
	}

	h.publishMu.Lock()
	defer h.publishMu.Unlock()

	h.mu.Lock()
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.deliver(data); err != nil {
			h.logger.Printf("failed to send frame to subscriber %d: %v", id, err)
			h.drop(id)
		}
	}
}

// Handle upgrades the request and keeps the subscriber until it disconnects.
// The subscriber is registered before the snapshot is taken, so any frame
// published in between is queued and sent right after it.
func (h *Hub) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed: %v", err)
		return
	}
	sub := &subscriber{conn: conn}
	id := h.add(sub)
	defer h.drop(id)

	var snapshot []byte
	if h.snapshot != nil {
		frame := h.snapshot(r.Context())
		snapshot, err = json.Marshal(message{Type: "snapshot", Tick: frame.Tick, Cells: frame.Cells})
		if err != nil {
			h.logger.Printf("failed to marshal snapshot: %v", err)
			return
		}
	}
	if err := sub.start(snapshot); err != nil {
		h.logger.Printf("failed to send snapshot: %v", err)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(sub *subscriber) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.subscribers[h.nextID] = sub
	return h.nextID
}

func (h *Hub) drop(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}
