// Compiles the hand-authored TikZ sources under diagrams/source/tikz and
// converts each one to PDF, PNG, and SVG.
package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"odmrfig/app"
	"odmrfig/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.SetupLogging(); err != nil {
		log.WithError(err).Fatal("Failed to configure logging")
	}

	if err := app.New(cfg).ConvertDiagrams(context.Background()); err != nil {
		log.WithError(err).Fatal("Diagram conversion failed")
	}
}
