// Package render saves a built plot as PNG, SVG, and PDF siblings under an
// output base directory, one subdirectory per format.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"odmrfig/entity/format"
)

// EnsureDirs creates the per-format output directories under base.
func EnsureDirs(base string) error {
	for _, f := range format.All() {
		dir := filepath.Join(base, f.Dir())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// Path returns the output file for a figure name in the given format.
func Path(base, name string, f format.Format) string {
	return filepath.Join(base, f.Dir(), name+f.Ext())
}

// Save writes the plot under base in every format. Existing files are
// overwritten unconditionally; the first write error aborts.
func Save(p *plot.Plot, base, name string, widthIn, heightIn float64, dpi int) error {
	w := vg.Length(widthIn) * vg.Inch
	h := vg.Length(heightIn) * vg.Inch

	for _, f := range format.All() {
		if err := writeOne(p, Path(base, name, f), f, w, h, dpi); err != nil {
			return err
		}
	}
	return nil
}

func writeOne(p *plot.Plot, path string, f format.Format, w, h vg.Length, dpi int) error {
	var wt io.WriterTo
	switch f {
	case format.PNG:
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))
		wt = vgimg.PngCanvas{Canvas: c}
	case format.SVG:
		c := vgsvg.New(w, h)
		p.Draw(draw.New(c))
		wt = c
	case format.PDF:
		c := vgpdf.New(w, h)
		p.Draw(draw.New(c))
		wt = c
	default:
		return fmt.Errorf("unsupported format %s", f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := wt.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
