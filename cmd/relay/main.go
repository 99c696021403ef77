// Command relay runs the treasure hunt across the other panels.
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/config"
	"github.com/makerhqsac/wall-of-fortune/internal/panel"
	"github.com/makerhqsac/wall-of-fortune/internal/relay"
)

func main() {
	f := panel.Register(flag.CommandLine, "relay")
	stations := flag.String("stations", "", "comma separated station order, overrides the config")
	flag.Parse()
	panel.SetupLogging(f.Debug)

	if err := run(f, *stations); err != nil {
		log.Fatal().Err(err).Msg("relay stopped")
	}
}

func run(f *panel.Flags, stations string) error {
	base := config.Default("relay")
	base.Loop.Timeout = 15 * time.Minute
	base.Stations = relay.DefaultStations
	cfg, err := f.Load(base)
	if err != nil {
		return err
	}
	if stations != "" {
		cfg.Stations = strings.Split(stations, ",")
	}

	g, err := relay.New(cfg.Stations)
	if err != nil {
		return err
	}
	p, err := panel.New(cfg)
	if err != nil {
		return err
	}
	log.Info().Strs("stations", cfg.Stations).Msg("hunt ready")
	return p.Run(g)
}
