//go:build !js
// +build !js

package main

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/codelinechef/portfolio-fx/common"
)

// ReloadMessage tells a page to reload itself.
const ReloadMessage = "reload"

// Hub holds the open live-reload sockets.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
	up      websocket.Upgrader
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: map[*websocket.Conn]bool{},
		up:      websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// ServeHTTP upgrades the request and keeps the socket until the page goes
// away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Len counts connected pages.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends msg to every page. Sockets that fail are dropped.
func (h *Hub) Broadcast(msg string) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			log := common.Component("server")
			log.Debug().Err(err).Msg("dropping live-reload client")
			h.drop(c)
		}
	}
}

// Watcher polls a file's modification time and calls onChange when it
// moves. A file that appears counts as a change; one that disappears does
// not.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func()
	last     time.Time
	stop     chan struct{}
	once     sync.Once
}

// NewWatcher records the file's current modification time as the baseline.
func NewWatcher(path string, interval time.Duration, onChange func()) *Watcher {
	w := &Watcher{path: path, interval: interval, onChange: onChange, stop: make(chan struct{})}
	w.last, _ = modTime(path)
	return w
}

func modTime(path string) (time.Time, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}

// Check compares once and reports whether onChange fired.
func (w *Watcher) Check() bool {
	t, ok := modTime(w.path)
	if !ok || !t.After(w.last) {
		return false
	}
	w.last = t
	w.onChange()
	return true
}

// Run checks on every tick until Stop.
func (w *Watcher) Run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stop) })
}
