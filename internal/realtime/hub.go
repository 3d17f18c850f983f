// Package realtime holds the connection registry for state-change broadcasts.
// Delivery is fire-and-forget, at-most-once, to currently connected observers
// only; disconnected observers receive no replay.
package realtime

import (
	"log/slog"
	"sync"
	"time"
)

// writeWait bounds how long a single stalled observer can hold up a
// broadcast before its connection is dropped.
const writeWait = 5 * time.Second

// Conn is the minimal surface the hub needs from a connection. Satisfied by
// *websocket.Conn; small enough to fake in tests.
type Conn interface {
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Hub is an explicit registry of live connections, owned by the server's
// lifecycle rather than package state. Each connection carries its own write
// lock: *websocket.Conn allows at most one concurrent writer, and broadcasts
// arrive from arbitrary request goroutines.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[Conn]*sync.Mutex
}

// NewHub creates an empty connection registry.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		conns:  make(map[Conn]*sync.Mutex),
	}
}

// Register adds a connection to the registry.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, present := h.conns[conn]; !present {
		h.conns[conn] = &sync.Mutex{}
	}
}

// Unregister removes a connection and closes it.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	_, present := h.conns[conn]
	delete(h.conns, conn)
	h.mu.Unlock()
	if present {
		_ = conn.Close()
	}
}

// Broadcast writes the event to every live connection. Connections whose
// write fails or times out are dropped; the failure is logged and never
// propagated.
func (h *Hub) Broadcast(event any) {
	h.mu.Lock()
	targets := make(map[Conn]*sync.Mutex, len(h.conns))
	for conn, writeLock := range h.conns {
		targets[conn] = writeLock
	}
	h.mu.Unlock()

	for conn, writeLock := range targets {
		if err := writeWithDeadline(conn, writeLock, event); err != nil {
			h.logger.Warn("Realtime broadcast write failed, dropping connection", slog.String("error", err.Error()))
			h.Unregister(conn)
		}
	}
}

// writeWithDeadline serializes writes to one connection and arms a deadline
// so a peer that stopped reading cannot block the caller indefinitely.
func writeWithDeadline(conn Conn, writeLock *sync.Mutex, event any) error {
	writeLock.Lock()
	defer writeLock.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(event)
}

// Len reports the number of live connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
