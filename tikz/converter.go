// Package tikz compiles hand-authored TikZ/LaTeX diagram sources to PDF and
// converts each compiled page to PNG and SVG siblings.
//
// The compiler is required: its absence aborts the run before any source is
// touched. Raster and vector converters are optional and tried in priority
// order (pdftocairo, then ImageMagick for PNG; pdftocairo, then pdf2svg for
// SVG); when none is installed the format is skipped with a log line.
// Compilation happens in a throwaway temp directory so a failed source
// leaves no partial output behind.
package tikz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"odmrfig/entity/format"
	"odmrfig/entity/status"
	"odmrfig/render"
)

// RunFunc executes an external tool in dir and returns its combined output.
type RunFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// LookPathFunc reports where a tool lives, or an error when it is not installed.
type LookPathFunc func(name string) (string, error)

type Converter struct {
	SourceDir string
	OutputDir string
	DPI       int
	PDFLaTeX  string // compiler binary name, required

	lookPath LookPathFunc
	run      RunFunc
}

func New(sourceDir, outputDir string, dpi int, pdflatex string) *Converter {
	return &Converter{
		SourceDir: sourceDir,
		OutputDir: outputDir,
		DPI:       dpi,
		PDFLaTeX:  pdflatex,
		lookPath:  exec.LookPath,
		run:       runCmd,
	}
}

// Result records the outcome for one source file. Failed is terminal,
// nothing is retried.
type Result struct {
	Name    string
	Status  status.Status
	Formats []format.Format
	Err     error
}

// ConvertAll processes every *.tex under SourceDir in name order. A source
// that fails to compile is reported and skipped; the remaining sources are
// still processed. The returned error is non-nil when the compiler is
// missing or any source failed.
func (c *Converter) ConvertAll(ctx context.Context) ([]Result, error) {
	if _, err := c.lookPath(c.PDFLaTeX); err != nil {
		return nil, fmt.Errorf("required compiler %q not found: %w", c.PDFLaTeX, err)
	}

	sources, err := filepath.Glob(filepath.Join(c.SourceDir, "*.tex"))
	if err != nil {
		return nil, fmt.Errorf("failed to list sources in %s: %w", c.SourceDir, err)
	}
	sort.Strings(sources)
	if len(sources) == 0 {
		log.WithField("dir", c.SourceDir).Info("No TikZ sources found")
		return nil, nil
	}

	if err := render.EnsureDirs(c.OutputDir); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(sources))
	failed := 0
	for _, src := range sources {
		res := c.convertOne(ctx, src)
		if res.Status == status.Failed {
			failed++
			log.WithError(res.Err).WithField("source", res.Name).Error("Conversion failed")
		} else {
			log.WithFields(log.Fields{
				"source":  res.Name,
				"formats": len(res.Formats),
			}).Info("Converted")
		}
		results = append(results, res)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d sources failed", failed, len(sources))
	}
	return results, nil
}

func (c *Converter) convertOne(ctx context.Context, src string) Result {
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	res := Result{Name: stem, Status: status.Pending}

	tmp, err := os.MkdirTemp("", "tikz-")
	if err != nil {
		res.Status = status.Failed
		res.Err = fmt.Errorf("failed to create temp dir: %w", err)
		return res
	}
	defer os.RemoveAll(tmp)

	if err := copyFile(src, filepath.Join(tmp, filepath.Base(src))); err != nil {
		res.Status = status.Failed
		res.Err = err
		return res
	}

	// pdflatex exits non-zero on recoverable warnings; the produced PDF is
	// the real success signal.
	out, _ := c.run(ctx, tmp, c.PDFLaTeX, "-interaction=nonstopmode", filepath.Base(src))
	pdf := filepath.Join(tmp, stem+".pdf")
	if !fileExists(pdf) {
		res.Status = status.Failed
		res.Err = fmt.Errorf("compiler produced no PDF for %s: %s", filepath.Base(src), tail(out, 800))
		return res
	}

	if err := copyFile(pdf, filepath.Join(c.OutputDir, format.PDF.Dir(), stem+format.PDF.Ext())); err != nil {
		res.Status = status.Failed
		res.Err = err
		return res
	}
	res.Status = status.Produced
	res.Formats = append(res.Formats, format.PDF)

	if c.pdfToPNG(ctx, pdf, filepath.Join(c.OutputDir, format.PNG.Dir(), stem+format.PNG.Ext())) {
		res.Formats = append(res.Formats, format.PNG)
	}
	if c.pdfToSVG(ctx, pdf, filepath.Join(c.OutputDir, format.SVG.Dir(), stem+format.SVG.Ext())) {
		res.Formats = append(res.Formats, format.SVG)
	}
	return res
}

// pdfToPNG rasterizes with the first available converter. Returns false when
// no converter is installed or the conversion produced nothing.
func (c *Converter) pdfToPNG(ctx context.Context, pdf, out string) bool {
	dpi := strconv.Itoa(c.DPI)
	switch {
	case c.toolExists("pdftocairo"):
		prefix := strings.TrimSuffix(out, format.PNG.Ext())
		_, _ = c.run(ctx, "", "pdftocairo", "-png", "-r", dpi, pdf, prefix)
		// pdftocairo appends a page suffix for single-page PDFs
		if paged := prefix + "-1" + format.PNG.Ext(); fileExists(paged) {
			return os.Rename(paged, out) == nil
		}
		return fileExists(out)
	case c.toolExists("magick"):
		_, err := c.run(ctx, "", "magick", "-density", dpi, pdf, "-quality", "100", out)
		return err == nil && fileExists(out)
	case c.toolExists("convert"):
		_, err := c.run(ctx, "", "convert", "-density", dpi, pdf, "-quality", "100", out)
		return err == nil && fileExists(out)
	default:
		log.Warn("No PNG converter found, skipping (install poppler or ImageMagick)")
		return false
	}
}

func (c *Converter) pdfToSVG(ctx context.Context, pdf, out string) bool {
	switch {
	case c.toolExists("pdftocairo"):
		_, err := c.run(ctx, "", "pdftocairo", "-svg", pdf, out)
		return err == nil && fileExists(out)
	case c.toolExists("pdf2svg"):
		_, err := c.run(ctx, "", "pdf2svg", pdf, out)
		return err == nil && fileExists(out)
	default:
		log.Warn("No SVG converter found, skipping (install poppler or pdf2svg)")
		return false
	}
}

func (c *Converter) toolExists(name string) bool {
	_, err := c.lookPath(name)
	return err == nil
}

func runCmd(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", dst, err)
	}
	return out.Close()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func tail(out []byte, n int) string {
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return string(out)
}
