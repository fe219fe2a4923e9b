package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odmrfig/config"
	"odmrfig/entity/format"
	"odmrfig/figure"
)

func TestRenderFiguresWritesThreeFilesPerFigure(t *testing.T) {
	if testing.Short() {
		t.Skip("renders real figures")
	}

	cfg := &config.Config{OutputDir: t.TempDir(), DPI: 96}
	a := New(cfg)

	require.NoError(t, a.RenderFigures(context.Background()))

	for _, fig := range figure.All() {
		for _, f := range format.All() {
			path := filepath.Join(cfg.OutputDir, f.Dir(), fig.Name()+f.Ext())
			info, err := os.Stat(path)
			require.NoError(t, err, "missing %s", path)
			assert.NotZero(t, info.Size(), "%s is empty", path)
		}
	}
}

func TestRenderFiguresStopsOnCancelledContext(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir(), DPI: 96}
	a := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.RenderFigures(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRenderFiguresFailsWhenOutputIsNotWritable(t *testing.T) {
	base := filepath.Join(t.TempDir(), "blocked")
	// A file where the output directory should go makes MkdirAll fail.
	require.NoError(t, os.WriteFile(base, []byte("in the way"), 0o644))

	cfg := &config.Config{OutputDir: base, DPI: 96}
	err := New(cfg).RenderFigures(context.Background())
	require.Error(t, err)
}
