package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeTree  ReloadMessageType = "tree"
	ReloadTypeError ReloadMessageType = "error"
)

// ReloadMessage is sent to subscribers via WebSocket.
type ReloadMessage struct {
	Type   ReloadMessageType `json:"type"`
	Hash   string            `json:"hash,omitempty"`
	Routes []routetree.Route `json:"routes,omitempty"`
	Tree   *routetree.Node   `json:"tree,omitempty"`
	Errors []*errors.Error   `json:"errors,omitempty"`
}

// TreeMessage builds the message announcing a compiled tree.
func TreeMessage(result *build.Result) ReloadMessage {
	return ReloadMessage{
		Type:   ReloadTypeTree,
		Hash:   result.Hash,
		Routes: result.Routes,
		Tree:   result.Tree,
	}
}

// ErrorMessage builds the message announcing a failed build.
func ErrorMessage(err error) ReloadMessage {
	return ReloadMessage{
		Type:   ReloadTypeError,
		Errors: errors.Expand(err, "S001"),
	}
}

// ReloadServer pushes route tree updates to WebSocket subscribers. New
// subscribers receive the latest message on connect.
type ReloadServer struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	last     []byte
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewReloadServer creates a new reload server. A nil logger uses
// slog.Default().
func NewReloadServer(logger *slog.Logger) *ReloadServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReloadServer{
		clients: make(map[*websocket.Conn]bool),
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins in dev
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (r *ReloadServer) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.log.Debug("websocket upgrade failed", "error", err)
		return
	}

	r.mu.Lock()
	r.clients[conn] = true
	last := r.last
	r.mu.Unlock()

	if last != nil {
		r.writeMu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, last)
		r.writeMu.Unlock()
		if err != nil {
			r.drop(conn)
			return
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	r.drop(conn)
}

// NotifyTree sends the compiled tree to all clients.
func (r *ReloadServer) NotifyTree(result *build.Result) {
	r.broadcast(TreeMessage(result))
}

// NotifyError sends build errors to all clients.
func (r *ReloadServer) NotifyError(err error) {
	r.broadcast(ErrorMessage(err))
}

// broadcast sends a message to all connected clients.
func (r *ReloadServer) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("failed to encode reload message", "type", msg.Type, "error", err)
		return
	}

	r.mu.Lock()
	r.last = data
	clients := make([]*websocket.Conn, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	r.mu.Unlock()

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			r.log.Debug("dropping websocket client", "error", err)
			r.drop(client)
		}
	}
}

func (r *ReloadServer) drop(conn *websocket.Conn) {
	r.mu.Lock()
	delete(r.clients, conn)
	r.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (r *ReloadServer) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close closes all client connections.
func (r *ReloadServer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for client := range r.clients {
		client.Close()
		delete(r.clients, client)
	}
}
