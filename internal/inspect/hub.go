package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/outlet/pkg/router"
)

// EventType is the kind of outlet event.
type EventType string

const (
	EventActivate   EventType = "activate"
	EventDeactivate EventType = "deactivate"
)

// Event is sent to websocket clients whenever the router mounts or
// unmounts a component.
type Event struct {
	Type      EventType     `json:"type"`
	Outlet    string        `json:"outlet"`
	Component string        `json:"component"`
	Path      string        `json:"path"`
	Params    router.Params `json:"params,omitempty"`
}

const writeWait = 5 * time.Second

// Hub streams outlet events to connected websocket clients. It implements
// router.OutletActivator.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

var _ router.OutletActivator = (*Hub)(nil)

// NewHub creates a new hub. A nil logger uses slog.Default.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger.With("component", "inspect.hub"),
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until the
// client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	h.logger.Debug("client connected", "remote", req.RemoteAddr)

	// Clients only listen; reading detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// Activate broadcasts an activate event.
func (h *Hub) Activate(outlet string, component router.Component, route *router.ActivatedRoute) {
	h.broadcast(Event{
		Type:      EventActivate,
		Outlet:    outlet,
		Component: router.ComponentName(component),
		Path:      routePath(route),
		Params:    route.Params(),
	})
}

// Deactivate broadcasts a deactivate event.
func (h *Hub) Deactivate(outlet string, route *router.ActivatedRoute) {
	h.broadcast(Event{
		Type:      EventDeactivate,
		Outlet:    outlet,
		Component: router.ComponentName(route.Component),
		Path:      routePath(route),
	})
}

func routePath(route *router.ActivatedRoute) string {
	if route.RouteConfig == nil {
		return ""
	}
	return route.RouteConfig.Path
}

// broadcast sends an event to all connected clients, dropping those whose
// write fails.
func (h *Hub) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, client := range clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("dropping client", "error", err)
			h.remove(client)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
