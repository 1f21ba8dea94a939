// Package hub streams store events to websocket clients.
package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/psidex/citygraph/internal/lib"
	"github.com/psidex/citygraph/internal/logger"
	"github.com/psidex/citygraph/internal/store"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
	defaultPing  = 30 * time.Second
	minPing      = time.Second
)

type client struct {
	id     string
	ws     *lib.SafeConn
	send   chan []byte
	types  lib.Set[store.EventType]
	pingCh chan time.Duration
	done   chan struct{}
}

func (c *client) wants(e store.EventType) bool {
	return c.types.Size() == 0 || c.types.Contains(e)
}

// Hub fans store events out to every connected client. It implements store.Notifier.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client
	upgrader websocket.Upgrader
	log      *zap.SugaredLogger
}

var _ store.Notifier = (*Hub)(nil)

func New() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: logger.Named("hub"),
	}
}

// Clients is the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues e for every interested client. A client whose queue is full misses
// the event rather than holding up the others.
func (h *Hub) Publish(e store.Event) {
	msg := message{ID: uuid.NewString(), Type: string(e.Type), Entry: e.Entry, Time: e.Time}.encode()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.wants(e.Type) {
			continue
		}
		select {
		case c.send <- msg:
		default:
			h.log.Warnw("client too slow, dropping event", "client", c.id, "type", e.Type)
		}
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debugw("ws upgrade failed", "error", err)
		return
	}

	c := &client{
		id:     uuid.NewString(),
		ws:     lib.NewSafeConn(conn, writeTimeout),
		send:   make(chan []byte, sendBuffer),
		types:  lib.NewSet[store.EventType](),
		pingCh: make(chan time.Duration, 1),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Debugw("client connected", "client", c.id, "address", r.RemoteAddr)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		_ = c.ws.Close()
		h.log.Debugw("client disconnected", "client", c.id)
	}()

	go h.readLoop(c)
	h.writeLoop(c)
}

// writeLoop owns all writes to the client until it goes away.
func (h *Hub) writeLoop(c *client) {
	hello := message{Type: typeHello, Client: c.id, Time: time.Now()}.encode()
	if err := c.ws.WriteText(hello); err != nil {
		return
	}

	ticker := time.NewTicker(defaultPing)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			if err := c.ws.WriteText(msg); err != nil {
				h.log.Debugw("ws write failed", "client", c.id, "error", err)
				return
			}
		case d := <-c.pingCh:
			ticker.Reset(d)
		case <-ticker.C:
			if err := c.ws.Ping(); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// readLoop applies subscribe messages. When the read fails the client is gone.
func (h *Hub) readLoop(c *client) {
	defer close(c.done)

	for {
		msg, err := c.ws.ReadMessage()
		if err != nil {
			return
		}

		sub := subscribe{}
		if err := json.Unmarshal(msg, &sub); err != nil {
			h.log.Debugw("ignoring bad subscribe message", "client", c.id, "error", err)
			continue
		}

		c.types.Reset(sub.Types...)
		every := max(sub.Ping.OrDefault(defaultPing), minPing)
		select {
		case c.pingCh <- every:
		default:
		}

		ping := lib.DurationFrom(every)
		ack := message{Type: typeSubscribed, Client: c.id, Types: sub.Types, Ping: &ping, Time: time.Now()}.encode()
		select {
		case c.send <- ack:
		default:
		}
	}
}
