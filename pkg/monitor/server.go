package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait     = 5 * time.Second
	clientBacklog = 256
)

// Message types sent over the WebSocket stream.
const (
	MessageDashboard = "dashboard"
	MessageEvent     = "event"
)

// Message is the envelope written to WebSocket clients. The
// first message on every connection carries the dashboard
// snapshot; each later message carries one event.
type Message struct {
	Type      string         `json:"type"`
	Dashboard *Snapshot      `json:"dashboard,omitempty"`
	Event     *ScenarioEvent `json:"event,omitempty"`
}

// Server streams scenario events to WebSocket clients at /ws
// and serves JSON snapshots at /stats and /dashboard.
type Server struct {
	mu        sync.RWMutex
	collector *EventCollector
	dashboard *Dashboard
	clients   map[chan []byte]struct{}
	addr      string
	upgrader  websocket.Upgrader
	server    *http.Server
	done      chan struct{}
	closeOnce sync.Once
}

// NewServer creates a monitoring server and subscribes it to
// the collector. Events update the dashboard and are broadcast
// to every connected client.
func NewServer(
	addr string,
	collector *EventCollector,
	dashboard *Dashboard,
) *Server {
	s := &Server{
		addr:      addr,
		collector: collector,
		dashboard: dashboard,
		clients:   make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
	collector.OnEvent(s.handleEvent)
	return s
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start serves until ctx is cancelled or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.closeClients()
		_ = srv.Close()
	}()

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server and disconnects every
// WebSocket client.
func (s *Server) Stop(ctx context.Context) error {
	s.closeClients()
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// ClientCount returns the number of connected WebSocket
// clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.closeOnce.Do(func() { close(s.done) })
}

// SetRunStatus records the run state on the dashboard and
// pushes the updated snapshot to every connected client.
func (s *Server) SetRunStatus(status string) {
	s.dashboard.SetStatus(status)
	snap := s.dashboard.Snapshot()
	data, err := json.Marshal(Message{
		Type: MessageDashboard, Dashboard: &snap,
	})
	if err != nil {
		return
	}
	s.broadcast(data)
}

func (s *Server) handleEvent(event ScenarioEvent) {
	s.dashboard.UpdateFromEvent(event)
	data, err := json.Marshal(Message{Type: MessageEvent, Event: &event})
	if err != nil {
		return
	}
	s.broadcast(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		return
	}
	defer conn.Close()

	ch := make(chan []byte, clientBacklog)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
	}()

	snap := s.dashboard.Snapshot()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(Message{
		Type: MessageDashboard, Dashboard: &snap,
	}); err != nil {
		return
	}

	// Clients only listen; reading detects when they go away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-s.done:
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(
					websocket.CloseGoingAway, "server stopping",
				),
				time.Now().Add(writeWait),
			)
			return
		case data := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(
				websocket.TextMessage, data,
			); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.collector.Stats())
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.dashboard.Snapshot())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- data:
		default:
			// Client too slow, skip
		}
	}
}
