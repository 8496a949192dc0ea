package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"puzzle-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("puzzle-service failed")
		os.Exit(1)
	}
}
