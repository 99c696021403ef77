// Package status serves a panel's live state for operators: a websocket feed
// of loop transitions and diagnostics, and a JSON health snapshot.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

const writeWait = 200 * time.Millisecond

type Snapshot struct {
	Panel   string           `json:"panel"`
	State   game.State       `json:"state"`
	Round   int              `json:"round"`
	Won     int              `json:"won"`
	Lost    int              `json:"lost"`
	Last    *game.Transition `json:"last,omitempty"`
	UptimeS float64          `json:"uptime_s"`
}

// Event is one message on the feed.
type Event struct {
	Kind       string           `json:"kind"`
	Snapshot   *Snapshot        `json:"snapshot,omitempty"`
	Transition *game.Transition `json:"transition,omitempty"`
	Diagnostic *Diagnostic      `json:"diagnostic,omitempty"`
}

type Hub struct {
	mu        sync.RWMutex
	panel     string
	state     game.State
	round     int
	won       int
	lost      int
	last      *game.Transition
	startTime time.Time
	clients   map[*websocket.Conn]bool
}

func NewHub(panel string) *Hub {
	return &Hub{
		panel:     panel,
		state:     game.Idle,
		startTime: time.Now(),
		clients:   map[*websocket.Conn]bool{},
	}
}

// Publish records t and fans it out. It is meant as a Loop.OnTransition.
func (h *Hub) Publish(t game.Transition) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = t.To
	h.round = t.Round
	switch t.To {
	case game.Won:
		h.won++
	case game.Lost:
		h.lost++
	}
	h.last = &t
	h.broadcast(Event{Kind: "transition", Transition: &t})
}

func (h *Hub) Diag(d Diagnostic) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast(Event{Kind: "diagnostic", Diagnostic: &d})
}

func (h *Hub) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshot()
}

func (h *Hub) snapshot() Snapshot {
	return Snapshot{
		Panel:   h.panel,
		State:   h.state,
		Round:   h.round,
		Won:     h.won,
		Lost:    h.lost,
		Last:    h.last,
		UptimeS: time.Since(h.startTime).Seconds(),
	}
}

// broadcast must be called with mu held.
func (h *Hub) broadcast(ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Msg("encode status event")
		return
	}
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write status event")
		}
	}
}

// HandleEvents upgrades to a websocket, sends the current snapshot and then
// every event until the client goes away.
func (h *Hub) HandleEvents(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	snap := h.snapshot()
	b, _ := json.Marshal(Event{Kind: "snapshot", Snapshot: &snap})
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Snapshot())
}

func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", h.HandleEvents)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

// Serve listens on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	log.Info().Str("addr", addr).Msg("status feed listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
