package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Notification is the message pushed to pages after every build attempt.
type Notification struct {
	Type    string `json:"type"` // always "build"
	BuildID string `json:"build_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Hub tracks live-reload clients and fans build notifications out to them.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    *Notification
}

// NewHub creates an empty Hub. Unless allowAll is set, only same-origin and
// local pages may connect, the same rule the CORS policy applies.
func NewHub(logger *slog.Logger, allowAll bool) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return allowAll || localOrigin(r) },
		},
	}
}

// localOrigin accepts requests without an Origin header, same-origin
// requests and pages served from localhost.
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	if u.Scheme != "http" {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}

// Clients returns the number of connected pages.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BuildSucceeded tells every page that a new export is available.
func (h *Hub) BuildSucceeded(buildID string) {
	h.broadcast(Notification{Type: "build", BuildID: buildID})
}

// BuildFailed tells every page the last rebuild failed. Pages keep showing
// the previous export.
func (h *Hub) BuildFailed(err error) {
	h.broadcast(Notification{Type: "build", Error: err.Error()})
}

func (h *Hub) broadcast(n Notification) {
	msg, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("livereload: marshal notification", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if n.Error == "" {
		h.last = &n
	}
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("livereload: dropping client", "error", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the page goes away. A new client is sent the current build immediately.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("livereload: websocket upgrade", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	if h.last != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(h.last)
	}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	// Pages never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("livereload: websocket read", "error", err)
			}
			return
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		delete(h.clients, conn)
	}
}
