// Renders the computed ODMR figures to diagrams/{png,svg,pdf}.
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

	if err := app.New(cfg).RenderFigures(context.Background()); err != nil {
		log.WithError(err).Fatal("Figure rendering failed")
	}
}
