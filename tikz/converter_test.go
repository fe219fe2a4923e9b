package tikz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odmrfig/entity/format"
	"odmrfig/entity/status"
)

var errNotInstalled = errors.New("executable file not found in $PATH")

// lookPathFor pretends only the named tools are installed.
func lookPathFor(tools ...string) LookPathFunc {
	return func(name string) (string, error) {
		for _, t := range tools {
			if t == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errNotInstalled
	}
}

// fakeToolchain emulates pdflatex and the poppler converters by creating the
// files the real tools would.
func fakeToolchain(t *testing.T, failSources ...string) RunFunc {
	t.Helper()
	return func(_ context.Context, dir, name string, args ...string) ([]byte, error) {
		switch name {
		case "pdflatex":
			texName := args[len(args)-1]
			for _, f := range failSources {
				if texName == f {
					return []byte("! Undefined control sequence."), errors.New("exit status 1")
				}
			}
			stem := strings.TrimSuffix(texName, ".tex")
			return nil, os.WriteFile(filepath.Join(dir, stem+".pdf"), []byte("%PDF-1.5 fake"), 0o644)
		case "pdftocairo":
			if args[0] == "-png" {
				prefix := args[len(args)-1]
				return nil, os.WriteFile(prefix+"-1.png", []byte("png"), 0o644)
			}
			return nil, os.WriteFile(args[len(args)-1], []byte("<svg/>"), 0o644)
		default:
			return nil, errNotInstalled
		}
	}
}

func writeSource(t *testing.T, dir, name string) {
	t.Helper()
	tex := "\\documentclass{standalone}\\begin{document}x\\end{document}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(tex), 0o644))
}

func newTestConverter(t *testing.T) (*Converter, string) {
	t.Helper()
	srcDir := t.TempDir()
	outDir := t.TempDir()
	c := New(srcDir, outDir, 300, "pdflatex")
	return c, srcDir
}

func TestMissingCompilerAbortsBeforeAnyWork(t *testing.T) {
	c, srcDir := newTestConverter(t)
	writeSource(t, srcDir, "fig1_energy_levels.tex")
	c.lookPath = lookPathFor() // nothing installed
	c.run = fakeToolchain(t)

	results, err := c.ConvertAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdflatex")
	assert.Nil(t, results)

	// Nothing was produced, not even the output directories.
	entries, err := os.ReadDir(c.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFullToolchainProducesAllThreeFormats(t *testing.T) {
	c, srcDir := newTestConverter(t)
	writeSource(t, srcDir, "fig1_energy_levels.tex")
	c.lookPath = lookPathFor("pdflatex", "pdftocairo")
	c.run = fakeToolchain(t)

	results, err := c.ConvertAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "fig1_energy_levels", res.Name)
	assert.Equal(t, status.Produced, res.Status)
	assert.ElementsMatch(t, []format.Format{format.PDF, format.PNG, format.SVG}, res.Formats)

	for _, f := range format.All() {
		path := filepath.Join(c.OutputDir, f.Dir(), "fig1_energy_levels"+f.Ext())
		info, statErr := os.Stat(path)
		require.NoError(t, statErr, "missing %s output", f)
		assert.NotZero(t, info.Size())
	}
}

func TestMissingOptionalConvertersSkipFormats(t *testing.T) {
	c, srcDir := newTestConverter(t)
	writeSource(t, srcDir, "fig2_odmr_workflow.tex")
	c.lookPath = lookPathFor("pdflatex") // no poppler, no ImageMagick
	c.run = fakeToolchain(t)

	results, err := c.ConvertAll(context.Background())
	require.NoError(t, err, "missing optional converters must not fail the run")
	require.Len(t, results, 1)
	assert.Equal(t, status.Produced, results[0].Status)
	assert.Equal(t, []format.Format{format.PDF}, results[0].Formats)

	_, statErr := os.Stat(filepath.Join(c.OutputDir, format.PNG.Dir(), "fig2_odmr_workflow.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCompileFailureLeavesNoPartialOutput(t *testing.T) {
	c, srcDir := newTestConverter(t)
	writeSource(t, srcDir, "fig_broken.tex")
	c.lookPath = lookPathFor("pdflatex", "pdftocairo")
	c.run = fakeToolchain(t, "fig_broken.tex")

	results, err := c.ConvertAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 sources failed")
	require.Len(t, results, 1)
	assert.Equal(t, status.Failed, results[0].Status)
	assert.ErrorContains(t, results[0].Err, "Undefined control sequence")

	for _, f := range format.All() {
		_, statErr := os.Stat(filepath.Join(c.OutputDir, f.Dir(), "fig_broken"+f.Ext()))
		assert.True(t, os.IsNotExist(statErr), "partial %s output left behind", f)
	}
}

func TestFailedSourceDoesNotStopTheOthers(t *testing.T) {
	c, srcDir := newTestConverter(t)
	writeSource(t, srcDir, "fig_a_broken.tex")
	writeSource(t, srcDir, "fig_b_good.tex")
	c.lookPath = lookPathFor("pdflatex", "pdftocairo")
	c.run = fakeToolchain(t, "fig_a_broken.tex")

	results, err := c.ConvertAll(context.Background())
	require.Error(t, err)
	require.Len(t, results, 2)

	// Sources are processed in name order.
	assert.Equal(t, "fig_a_broken", results[0].Name)
	assert.Equal(t, status.Failed, results[0].Status)
	assert.Equal(t, "fig_b_good", results[1].Name)
	assert.Equal(t, status.Produced, results[1].Status)

	_, statErr := os.Stat(filepath.Join(c.OutputDir, format.PDF.Dir(), "fig_b_good.pdf"))
	assert.NoError(t, statErr)
}

func TestEmptySourceDirIsANoOp(t *testing.T) {
	c, _ := newTestConverter(t)
	c.lookPath = lookPathFor("pdflatex")
	c.run = fakeToolchain(t)

	results, err := c.ConvertAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, results)
}
