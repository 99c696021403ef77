package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
)

const (
	DefaultInterval = 50 * time.Millisecond
	DefaultTimeout  = 60 * time.Second
)

// Loop owns the game, the channel and the optional event queue.
type Loop struct {
	Game    Game
	Channel Transport
	Events  *input.Queue

	Mode     Mode
	Interval time.Duration
	// Timeout loses a running round; zero disables it.
	Timeout  time.Duration
	Triggers []Trigger
	// CompleteBody is broadcast after a win; empty sends nothing.
	CompleteBody string

	Now          func() time.Time
	Log          zerolog.Logger
	OnTransition func(Transition)

	ctx    context.Context
	state  State
	round  *Round
	rounds int
	won    int
	lost   int
}

// NewLoop returns a network-triggered loop with default timing that starts on
// RESET from any panel.
func NewLoop(g Game, ch Transport) *Loop {
	return &Loop{
		Game:         g,
		Channel:      ch,
		Mode:         Network,
		Interval:     DefaultInterval,
		Timeout:      DefaultTimeout,
		Triggers:     []Trigger{{Body: comms.Reset}},
		CompleteBody: comms.Complete,
		Now:          time.Now,
		Log:          log.Logger,
		state:        Idle,
	}
}

func (l *Loop) State() State { return l.state }

// Round is the running round, nil when idle.
func (l *Loop) Round() *Round { return l.round }

// Stats counts rounds played, won and lost.
func (l *Loop) Stats() (rounds, won, lost int) { return l.rounds, l.won, l.lost }

func (l *Loop) panel() string {
	if l.Channel != nil {
		return l.Channel.Name()
	}
	return l.Game.Name()
}

// Step runs one poll iteration. Errors from the game are returned as is; a
// finished Once loop returns ErrDone.
func (l *Loop) Step() error {
	if err := l.drainMessages(); err != nil {
		return err
	}
	l.drainEvents()

	switch l.state {
	case Idle:
		if l.Mode == Local || (l.Mode == Once && l.rounds == 0) {
			return l.start(string(l.Mode))
		}
		if l.Mode == Once {
			return ErrDone
		}
	case Running:
		ok, err := l.Game.Poll(l.round)
		if err != nil {
			return fmt.Errorf("%s: poll: %w", l.Game.Name(), err)
		}
		if ok {
			return l.finish(Won, "goal")
		}
		if l.Timeout > 0 && l.round.Elapsed() > l.Timeout {
			return l.finish(Lost, "timeout")
		}
	}
	return nil
}

// Run steps every Interval until ctx is done or a Once round ends. Outputs are
// cleared on the way out.
func (l *Loop) Run(ctx context.Context) error {
	l.ctx = ctx
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer func() {
		if err := l.Game.Clear(); err != nil {
			l.Log.Warn().Err(err).Msg("clear outputs")
		}
	}()

	for {
		if err := l.Step(); err != nil {
			if errors.Is(err, ErrDone) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Loop) drainMessages() error {
	if l.Channel == nil {
		return nil
	}
	for l.Channel.Available() > 0 {
		m := l.Channel.Recv()
		if m.Origin == l.Channel.Name() {
			continue
		}
		if err := l.dispatch(m); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) dispatch(m comms.Message) error {
	switch l.state {
	case Idle:
		if l.triggered(m) {
			return l.start(m.String())
		}
	case Running:
		if m.Body == comms.Stop && l.fromTriggerOrigin(m) {
			return l.finish(Lost, m.String())
		}
		if h, ok := l.Game.(MessageHandler); ok {
			h.HandleMessage(l.round, m)
			return nil
		}
	}
	l.Log.Debug().Str("origin", m.Origin).Str("body", m.Body).
		Str("state", string(l.state)).Msg("ignored message")
	return nil
}

func (l *Loop) triggered(m comms.Message) bool {
	for _, t := range l.Triggers {
		if t.Match(m) {
			return true
		}
	}
	return false
}

func (l *Loop) fromTriggerOrigin(m comms.Message) bool {
	for _, t := range l.Triggers {
		if t.Origin == "" || t.Origin == m.Origin {
			return true
		}
	}
	return false
}

func (l *Loop) drainEvents() {
	if l.Events == nil {
		return
	}
	evs := l.Events.Drain()
	h, ok := l.Game.(EventHandler)
	if l.state != Running || !ok {
		return
	}
	for _, ev := range evs {
		h.HandleEvent(l.round, ev)
	}
}

func (l *Loop) start(reason string) error {
	l.rounds++
	l.round = NewRound(l.ctx, l.rounds, l.Channel, l.Now, l.Log.With().Str("panel", l.panel()).Logger())
	l.transition(Running, reason)
	if err := l.Game.Begin(l.round); err != nil {
		return fmt.Errorf("%s: begin: %w", l.Game.Name(), err)
	}
	return nil
}

func (l *Loop) finish(outcome State, reason string) error {
	r := l.round
	switch outcome {
	case Won:
		l.won++
	case Lost:
		l.lost++
	}
	l.transition(outcome, reason)
	err := l.Game.End(r, outcome)
	if outcome == Won && l.CompleteBody != "" {
		r.Broadcast(l.CompleteBody)
	}
	l.transition(Idle, "round over")
	l.round = nil

	if err != nil {
		return fmt.Errorf("%s: end: %w", l.Game.Name(), err)
	}
	if l.Mode == Once {
		return ErrDone
	}
	return nil
}

func (l *Loop) transition(to State, reason string) {
	tr := Transition{
		Panel:  l.panel(),
		From:   l.state,
		To:     to,
		Reason: reason,
		At:     l.Now(),
	}
	if l.round != nil {
		tr.Round = l.round.Number
		tr.RoundID = l.round.ID.String()
	}
	l.state = to

	ev := l.Log.Info()
	if to == Idle {
		ev = l.Log.Debug()
	}
	ev.Str("panel", tr.Panel).Int("round", tr.Round).
		Str("from", string(tr.From)).Str("to", string(tr.To)).
		Str("reason", reason).Msg("state")

	if l.OnTransition != nil {
		l.OnTransition(tr)
	}
}
