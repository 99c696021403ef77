// Package game runs a panel's poll loop: drain broadcast messages and input
// events, advance the round, check the goal and the clock.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
)

// State of the loop. Won and Lost last for a single step.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Won     State = "won"
	Lost    State = "lost"
)

// Mode decides what starts a round.
type Mode string

const (
	// Network waits for a trigger message.
	Network Mode = "network"
	// Local plays round after round.
	Local Mode = "local"
	// Once plays a single round and exits.
	Once Mode = "once"
)

// ErrDone is returned by Step when a Once loop has finished its round.
var ErrDone = errors.New("game: done")

// Transport is the broadcast channel as the loop sees it.
type Transport interface {
	Name() string
	Send(body string) error
	Available() int
	Recv() comms.Message
}

// Game is one panel's rules and outputs. All methods are called from the loop
// goroutine.
type Game interface {
	Name() string
	// Begin sets up a new round: roll goals, light outputs.
	Begin(r *Round) error
	// Poll samples inputs, updates outputs and reports whether the goal is met.
	Poll(r *Round) (bool, error)
	// End runs the terminal action for outcome (Won or Lost).
	End(r *Round, outcome State) error
	// Clear turns outputs off. Called on shutdown.
	Clear() error
}

// MessageHandler is implemented by games that react to broadcasts mid-round.
type MessageHandler interface {
	HandleMessage(r *Round, m comms.Message)
}

// EventHandler is implemented by games that take edge-triggered input.
type EventHandler interface {
	HandleEvent(r *Round, ev input.Event)
}

// Trigger matches a start message. An empty Origin matches any panel.
type Trigger struct {
	Origin string `yaml:"origin,omitempty" json:"origin,omitempty"`
	Body   string `yaml:"body" json:"body"`
}

func (t Trigger) Match(m comms.Message) bool {
	return (t.Origin == "" || t.Origin == m.Origin) && t.Body == m.Body
}

// Round is the per-round state shared with the game.
type Round struct {
	ID      uuid.UUID
	Number  int
	Started time.Time

	ctx context.Context
	now func() time.Time
	tx  Transport
	log zerolog.Logger
}

// NewRound starts round n now. The loop creates rounds itself; games under
// test can build one directly.
func NewRound(ctx context.Context, n int, tx Transport, now func() time.Time, log zerolog.Logger) *Round {
	if now == nil {
		now = time.Now
	}
	id := uuid.New()
	return &Round{
		ID:      id,
		Number:  n,
		Started: now(),
		ctx:     ctx,
		now:     now,
		tx:      tx,
		log:     log.With().Int("round", n).Str("round_id", id.String()).Logger(),
	}
}

// Context is cancelled when the loop shuts down; terminal actions that sleep
// should honour it.
func (r *Round) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

func (r *Round) Elapsed() time.Duration { return r.now().Sub(r.Started) }

// Broadcast sends body on the panel's channel. Failures are logged, never
// retried.
func (r *Round) Broadcast(body string) {
	if r.tx == nil {
		return
	}
	if err := r.tx.Send(body); err != nil {
		r.log.Warn().Err(err).Str("body", body).Msg("broadcast failed")
		return
	}
	r.log.Debug().Str("body", body).Msg("broadcast")
}

// Logger is the round's logger, tagged with the round id.
func (r *Round) Logger() *zerolog.Logger { return &r.log }

// Transition is reported to Loop.OnTransition.
type Transition struct {
	Panel   string    `json:"panel"`
	Round   int       `json:"round"`
	RoundID string    `json:"round_id,omitempty"`
	From    State     `json:"from"`
	To      State     `json:"to"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}
