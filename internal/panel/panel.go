// Package panel is the shared bootstrap of the panel binaries: flags and
// config, logging, the broadcast channel, the loop and the status feed.
package panel

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
	"github.com/makerhqsac/wall-of-fortune/internal/input"
	"github.com/makerhqsac/wall-of-fortune/internal/status"
)

type Panel struct {
	Config  *config.Config
	Channel *comms.Channel
	Events  *input.Queue
	Hub     *status.Hub

	ctx  context.Context
	stop context.CancelFunc
}

// New opens the panel's channel. The panel's context ends on SIGINT or
// SIGTERM.
func New(cfg *config.Config) (*Panel, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	p, err := NewContext(ctx, cfg)
	if err != nil {
		stop()
		return nil, err
	}
	cancel := p.stop
	p.stop = func() {
		cancel()
		stop()
	}
	return p, nil
}

func NewContext(ctx context.Context, cfg *config.Config) (*Panel, error) {
	ch, err := comms.Begin(cfg.Name, comms.WithPort(cfg.Comms.Port), comms.WithBroadcast(cfg.Comms.Broadcast))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Panel{
		Config:  cfg,
		Channel: ch,
		Events:  input.NewQueue(),
		Hub:     status.NewHub(cfg.Name),
		ctx:     ctx,
		stop:    cancel,
	}
	log.Info().Str("panel", cfg.Name).Int("port", ch.Port()).Str("mode", string(cfg.Loop.Mode)).Msg("channel open")
	return p, nil
}

func (p *Panel) Context() context.Context { return p.ctx }

// Stop ends Run.
func (p *Panel) Stop() { p.stop() }

// Watch queues debounced press and release events from an active-low button.
func (p *Panel) Watch(source string, pin gpio.PinIn) error {
	return input.Watch(p.ctx, source, pin, p.Events, input.DefaultOptions())
}

// Loop builds the game loop from the config. Besides the configured
// triggers the panel always starts on START:<name> from anyone, so an empty
// start_on list makes a relay-only station.
func (p *Panel) Loop(g game.Game) *game.Loop {
	l := game.NewLoop(g, p.Channel)
	l.Events = p.Events
	l.Mode = p.Config.Loop.Mode
	l.Interval = p.Config.Loop.Interval
	l.Timeout = p.Config.Loop.Timeout
	if p.Config.StartOn != nil {
		l.Triggers = append([]game.Trigger(nil), p.Config.StartOn...)
	}
	l.Triggers = append(l.Triggers, game.Trigger{Body: comms.Start(p.Config.Name)})
	l.OnTransition = p.Hub.Publish
	return l
}

// Run plays g until the context ends or a once round finishes, then closes
// the channel.
func (p *Panel) Run(g game.Game) error {
	defer p.Close()
	if addr := p.Config.Status.Addr; addr != "" {
		go func() {
			if err := p.Hub.Serve(p.ctx, addr); err != nil {
				log.Error().Err(err).Str("addr", addr).Msg("status feed stopped")
			}
		}()
	}
	err := p.Loop(g).Run(p.ctx)
	if err != nil && p.ctx.Err() != nil {
		log.Info().Msg("shutting down")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", p.Config.Name, err)
	}
	return nil
}

// Diag reports a hardware or network condition on the status feed and the log.
func (p *Panel) Diag(d status.Diagnostic) {
	ev := log.Info()
	switch d.Severity {
	case status.Warn:
		ev = log.Warn()
	case status.Err:
		ev = log.Error()
	}
	ev.Str("code", d.Code).Str("detail", d.Detail).Msg(d.Summary)
	p.Hub.Diag(d)
}

func (p *Panel) Close() error {
	p.stop()
	return p.Channel.Close()
}
