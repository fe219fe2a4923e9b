// Package figure declares the fixed set of computed ODMR figures. Each
// figure evaluates its closed-form curves over a sweep axis and assembles a
// plot; saving the plot in every output format is the render package's job.
package figure

import (
	"gonum.org/v1/plot"

	"odmrfig/entity/parameters"
)

type Figure struct {
	name     string
	widthIn  float64 // inches
	heightIn float64
	build    func(*parameters.Parameters) (*plot.Plot, error)
}

func (f Figure) Name() string {
	return f.name
}

// Size returns the figure dimensions in inches.
func (f Figure) Size() (w, h float64) {
	return f.widthIn, f.heightIn
}

func (f Figure) Build(p *parameters.Parameters) (*plot.Plot, error) {
	return f.build(p)
}

// All lists every figure the renderer produces, in output order. fig1 and
// fig2 are hand-authored TikZ sources handled by the converter, not here.
func All() []Figure {
	return []Figure{
		{name: "fig3_zeeman_splitting", widthIn: 10, heightIn: 6, build: buildZeemanSplitting},
		{name: "fig4_fluorescence_contrast", widthIn: 10, heightIn: 5, build: buildFluorescenceContrast},
		{name: "fig5_nv_orientation_spectra", widthIn: 12, heightIn: 6, build: buildOrientationSpectra},
		{name: "fig6_temperature_shift", widthIn: 10, heightIn: 6, build: buildTemperatureShift},
	}
}
