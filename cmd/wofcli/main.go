// Command wofcli sends a single message to the wall, e.g.
//
//	wofcli -m RESET
//	wofcli -n xy_chase -m COMPLETE
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
)

func main() {
	var (
		name  = flag.String("n", "admin", "origin name the message is sent from")
		port  = flag.Int("p", comms.DefaultPort, "broadcast port")
		body  = flag.String("m", "", "message to send")
		bcast = flag.String("b", comms.DefaultBroadcast, "broadcast address")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *body == "" {
		fmt.Fprintln(os.Stderr, "wofcli: -m is required")
		flag.Usage()
		os.Exit(2)
	}

	ch, err := comms.Begin(*name, comms.WithPort(*port), comms.WithBroadcast(*bcast))
	if err != nil {
		log.Fatal().Err(err).Msg("open channel")
	}
	defer ch.Close()

	if err := ch.Send(*body); err != nil {
		log.Error().Err(err).Str("body", *body).Msg("send failed")
		return
	}
	log.Info().Str("origin", *name).Str("body", *body).Int("port", *port).Msg("sent")
}
