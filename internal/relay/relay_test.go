package relay

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
	"github.com/makerhqsac/wall-of-fortune/internal/game/gametest"
)

func statuses(g *Game) []Status {
	var out []Status
	for _, s := range g.Stages() {
		out = append(out, s.Status)
	}
	return out
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
	_, err = New([]string{"a", "b", "a"})
	assert.Error(t, err)

	g, err := New([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []Status{Uninitiated, Uninitiated}, statuses(g))
}

func TestProgression(t *testing.T) {
	tx := gametest.NewTransport("relay")
	r := game.NewRound(context.Background(), 1, tx, time.Now, zerolog.Nop())
	g, err := New([]string{"color_match", "xy_chase", "zoltar"})
	require.NoError(t, err)

	require.NoError(t, g.Begin(r))
	assert.Equal(t, []string{"START:color_match"}, tx.Sent())
	assert.Equal(t, []Status{InProgress, Uninitiated, Uninitiated}, statuses(g))

	g.HandleMessage(r, comms.Message{Origin: "xy_chase", Body: comms.Complete})
	assert.Equal(t, []Status{InProgress, Uninitiated, Uninitiated}, statuses(g), "out of turn")
	g.HandleMessage(r, comms.Message{Origin: "color_match", Body: comms.Coin})
	assert.Equal(t, []Status{InProgress, Uninitiated, Uninitiated}, statuses(g), "not a completion")

	g.HandleMessage(r, comms.Message{Origin: "color_match", Body: comms.Complete})
	assert.Equal(t, []Status{Completed, InProgress, Uninitiated}, statuses(g))
	won, err := g.Poll(r)
	require.NoError(t, err)
	assert.False(t, won)

	g.HandleMessage(r, comms.Message{Origin: "xy_chase", Body: comms.Complete})
	g.HandleMessage(r, comms.Message{Origin: "zoltar", Body: comms.Complete})
	assert.Equal(t, []Status{Completed, Completed, Completed}, statuses(g))
	assert.Equal(t, []string{"START:color_match", "START:xy_chase", "START:zoltar"}, tx.Sent())

	won, err = g.Poll(r)
	require.NoError(t, err)
	assert.True(t, won)

	g.HandleMessage(r, comms.Message{Origin: "zoltar", Body: comms.Complete})
	assert.Len(t, tx.Sent(), 3, "nothing left to start")
}

func TestLostSendsStop(t *testing.T) {
	tx := gametest.NewTransport("relay")
	r := game.NewRound(context.Background(), 1, tx, time.Now, zerolog.Nop())
	g, err := New([]string{"hal"})
	require.NoError(t, err)
	require.NoError(t, g.Begin(r))
	require.NoError(t, g.End(r, game.Lost))
	assert.Equal(t, []string{"START:hal", "STOP"}, tx.Sent())

	require.NoError(t, g.Begin(r))
	assert.Equal(t, []Status{InProgress}, statuses(g), "a new round starts over")
}

func TestRelayUnderLoop(t *testing.T) {
	tx := gametest.NewTransport("relay")
	g, err := New([]string{"hal", "zoltar"})
	require.NoError(t, err)
	l := game.NewLoop(g, tx)
	l.Log = zerolog.Nop()

	tx.Deliver("admin", comms.Reset)
	require.NoError(t, l.Step())
	assert.Equal(t, game.Running, l.State())

	tx.Deliver("hal", comms.Complete)
	tx.Deliver("zoltar", comms.Complete)
	require.NoError(t, l.Step())
	assert.Equal(t, game.Idle, l.State())
	assert.Equal(t, []string{"START:hal", "START:zoltar", "COMPLETE"}, tx.Sent())
	_, won, _ := l.Stats()
	assert.Equal(t, 1, won)
}
