// Package app wires configuration, the figure registry, and the TikZ
// converter into the two single-pass runs the binaries expose.
package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"odmrfig/config"
	"odmrfig/entity/parameters"
	"odmrfig/figure"
	"odmrfig/render"
	"odmrfig/tikz"
)

type App struct {
	Cfg    *config.Config
	Params *parameters.Parameters
}

func New(cfg *config.Config) *App {
	return &App{
		Cfg:    cfg,
		Params: parameters.NewDefault(),
	}
}

// RenderFigures builds every declared figure and writes its PNG, SVG, and
// PDF outputs. The first failure aborts the run.
func (a *App) RenderFigures(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("Figure run finished")
	}()
	log.WithFields(log.Fields{
		"output": a.Cfg.OutputDir,
		"dpi":    a.Cfg.DPI,
	}).Debug("Figure run started")

	if err := render.EnsureDirs(a.Cfg.OutputDir); err != nil {
		return err
	}

	for _, fig := range figure.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		figTime := time.Now()
		p, err := fig.Build(a.Params)
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", fig.Name(), err)
		}

		w, h := fig.Size()
		if err := render.Save(p, a.Cfg.OutputDir, fig.Name(), w, h, a.Cfg.DPI); err != nil {
			return fmt.Errorf("failed to save %s: %w", fig.Name(), err)
		}
		log.WithFields(log.Fields{
			"figure": fig.Name(),
			"time":   time.Since(figTime),
		}).Info("Figure saved")
	}

	log.WithField("figures", len(figure.All())).Info("All figures rendered")
	return nil
}

// ConvertDiagrams runs the external toolchain over every diagram source.
func (a *App) ConvertDiagrams(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("Conversion run finished")
	}()
	log.WithFields(log.Fields{
		"source": a.Cfg.TikzDir,
		"output": a.Cfg.OutputDir,
	}).Debug("Conversion run started")

	conv := tikz.New(a.Cfg.TikzDir, a.Cfg.OutputDir, a.Cfg.DPI, a.Cfg.PDFLaTeX)
	results, err := conv.ConvertAll(ctx)
	for _, res := range results {
		log.WithFields(log.Fields{
			"source": res.Name,
			"status": res.Status.String(),
		}).Debug("Source finished")
	}
	if err != nil {
		return fmt.Errorf("diagram conversion failed: %w", err)
	}
	return nil
}
