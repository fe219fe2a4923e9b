// Package physics evaluates the closed-form expressions behind the ODMR
// figures: Lorentzian dip profiles, Zeeman splitting of the NV ground-state
// resonance, the linear temperature shift of the zero-field splitting, and
// the seeded noise used for the fluorescence time trace.
//
// All functions are pure. Frequencies are in GHz, magnetic fields in mT,
// temperatures in K, angles in degrees.
package physics

import (
	"math"
	"math/rand"
)

// Lorentzian returns the normalized fluorescence at frequency f for a single
// resonance dip centered at f0 with half-width hwhm and fractional contrast.
// Far from resonance the value approaches 1; at f == f0 it is 1 - contrast.
func Lorentzian(f, f0, hwhm, contrast float64) float64 {
	return 1 - contrast*(hwhm*hwhm/((f-f0)*(f-f0)+hwhm*hwhm))
}

// LorentzianCurve evaluates Lorentzian over the whole sweep axis.
func LorentzianCurve(f []float64, f0, hwhm, contrast float64) []float64 {
	out := make([]float64, len(f))
	for i, v := range f {
		out[i] = Lorentzian(v, f0, hwhm, contrast)
	}
	return out
}

// DipProduct multiplies the dip profiles at every center into one spectrum,
// the way overlapping resonances combine in a normalized ODMR trace.
func DipProduct(f []float64, centers []float64, hwhm, contrast float64) []float64 {
	out := make([]float64, len(f))
	for i := range out {
		out[i] = 1
	}
	for _, c := range centers {
		for i, v := range f {
			out[i] *= Lorentzian(v, c, hwhm, contrast)
		}
	}
	return out
}

// ZeemanPair returns the two resonance frequencies D ± γB for a field of
// b mT along the NV axis. At b == 0 both collapse onto d.
func ZeemanPair(d, gyro, b float64) (lo, hi float64) {
	return d - gyro*b, d + gyro*b
}

// ZeemanSplitting returns the dip separation Δf = 2γB.
func ZeemanSplitting(gyro, b float64) float64 {
	return 2 * gyro * b
}

// ShiftedSplitting returns the zero-field splitting at temperature t given
// the linear coefficient dD/dT quoted at tRef.
func ShiftedSplitting(d, rate, t, tRef float64) float64 {
	return d + rate*(t-tRef)
}

// FieldProjection returns the component of a bias field b along an NV axis
// tilted by angleDeg from the field direction.
func FieldProjection(b, angleDeg float64) float64 {
	return b * math.Cos(angleDeg*math.Pi/180)
}

// GaussianNoise returns n samples of zero-mean Gaussian noise with the given
// standard deviation. The generator is seeded explicitly so repeated runs
// produce identical traces.
func GaussianNoise(n int, sigma float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// MovingAverage smooths xs with a centered boxcar of the given window,
// zero-padding beyond the ends. Output length equals input length.
func MovingAverage(xs []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(xs))
	half := window / 2
	for i := range xs {
		var sum float64
		for j := i - half; j < i-half+window; j++ {
			if j >= 0 && j < len(xs) {
				sum += xs[j]
			}
		}
		out[i] = sum / float64(window)
	}
	return out
}
