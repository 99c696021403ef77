// Package relay runs the treasure hunt: stations are started one after the
// other, each when the previous one broadcasts COMPLETE.
package relay

import (
	"errors"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/game"
)

type Status string

const (
	Uninitiated Status = "uninitiated"
	InProgress  Status = "in_progress"
	Completed   Status = "completed"
)

type Stage struct {
	Station string `json:"station"`
	Status  Status `json:"status"`
}

// DefaultStations is the hunt order on the wall.
var DefaultStations = []string{"color_match", "xy_chase", "hal", "zoltar"}

type Game struct {
	stages []Stage
}

func New(stations []string) (*Game, error) {
	if len(stations) == 0 {
		return nil, errors.New("relay: no stations")
	}
	seen := make(map[string]bool, len(stations))
	g := &Game{}
	for _, s := range stations {
		if seen[s] {
			return nil, errors.New("relay: station " + s + " listed twice")
		}
		seen[s] = true
		g.stages = append(g.stages, Stage{Station: s, Status: Uninitiated})
	}
	return g, nil
}

func (g *Game) Name() string { return "relay" }

// Stages returns a copy of the hunt's progress.
func (g *Game) Stages() []Stage {
	return append([]Stage(nil), g.stages...)
}

// active is the index of the stage in progress, or -1.
func (g *Game) active() int {
	for i, s := range g.stages {
		if s.Status == InProgress {
			return i
		}
	}
	return -1
}

func (g *Game) startStage(r *game.Round, i int) {
	g.stages[i].Status = InProgress
	r.Logger().Info().Str("station", g.stages[i].Station).Int("stage", i+1).Int("of", len(g.stages)).Msg("station started")
	r.Broadcast(comms.Start(g.stages[i].Station))
}

func (g *Game) Begin(r *game.Round) error {
	for i := range g.stages {
		g.stages[i].Status = Uninitiated
	}
	g.startStage(r, 0)
	return nil
}

// HandleMessage completes the stage in progress when its station reports
// COMPLETE, and starts the next one.
func (g *Game) HandleMessage(r *game.Round, m comms.Message) {
	if m.Body != comms.Complete {
		return
	}
	i := g.active()
	if i < 0 || g.stages[i].Station != m.Origin {
		r.Logger().Debug().Str("origin", m.Origin).Msg("completion out of turn")
		return
	}
	g.stages[i].Status = Completed
	r.Logger().Info().Str("station", m.Origin).Msg("station completed")
	if i+1 < len(g.stages) {
		g.startStage(r, i+1)
	}
}

func (g *Game) Poll(r *game.Round) (bool, error) {
	for _, s := range g.stages {
		if s.Status != Completed {
			return false, nil
		}
	}
	return true, nil
}

// End stops the hunt on a loss so the station in progress gives up too.
func (g *Game) End(r *game.Round, outcome game.State) error {
	if outcome == game.Lost {
		r.Broadcast(comms.Stop)
	}
	return nil
}

func (g *Game) Clear() error { return nil }
