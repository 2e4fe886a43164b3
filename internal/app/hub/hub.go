/*
Package hub contains the core logic for tracking connected clients and fanning
record updates out to them.

This file defines the Hub struct, the registry of all live connections. It
assigns connection identities, and provides the unicast and broadcast delivery
primitives used by the protocol handler.
*/
package hub

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"usersync/internal/pkg/logx"
)

// Hub tracks every live connection, keyed by a server-assigned connection ID,
// and delivers outbound frames to their outboxes.
type Hub struct {
	// mu protects concurrent access to the clients map. Broadcasts hold the
	// read lock so they observe one consistent snapshot of the registry.
	mu sync.RWMutex

	// clients maps a connection ID to its outbound delivery queue.
	clients map[uint64]*outbox

	// nextID is the connection identity counter. IDs are monotonically
	// increasing, assigned at registration, and never reused. Only the Hub
	// may touch it.
	nextID atomic.Uint64

	// structured logger with hub context.
	logger zerolog.Logger
}

// NewHub constructs and returns a new Hub instance with no clients.
func NewHub() *Hub {
	hubLogger := logx.Logger().With().Str("component", "hub").Logger()

	return &Hub{
		clients: make(map[uint64]*outbox),
		logger:  hubLogger,
	}
}

// register adds the outbox to the registry under a fresh connection ID and
// returns that ID. The first client gets ID 1.
func (h *Hub) register(out *outbox) uint64 {
	id := h.nextID.Add(1)

	h.mu.Lock()
	h.clients[id] = out
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Uint64("client_id", id).Int("total_clients", total).Msg("Client connected.")
	return id
}

// unregister removes the connection from the registry and closes its outbox,
// which lets the client's write pump terminate. Unknown IDs are ignored, so
// repeated cleanup is safe.
func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	out, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	out.Close()
	h.logger.Info().Uint64("client_id", id).Int("total_clients", total).Msg("Client disconnected.")
}

// unicast queues a frame for exactly one client. If the client is no longer
// registered the frame is dropped: a send racing a disconnect is not an error.
func (h *Hub) unicast(id uint64, frame []byte) {
	h.mu.RLock()
	out, ok := h.clients[id]
	h.mu.RUnlock()

	if ok {
		out.Put(frame)
	}
}

// broadcast queues a frame for every currently registered client. A client
// whose outbox closed mid-broadcast silently drops its copy; delivery to the
// remaining clients is unaffected.
func (h *Hub) broadcast(frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, out := range h.clients {
		out.Put(frame)
	}
}

// ClientCount returns the number of currently registered connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Shutdown closes every registered outbox so all write pumps terminate.
// Read pumps end when their transports close. The hub stays usable for
// lookups but delivers nothing afterwards.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	for id, out := range h.clients {
		out.Close()
		delete(h.clients, id)
	}
	h.mu.Unlock()

	h.logger.Info().Msg("Hub shutdown complete.")
}
