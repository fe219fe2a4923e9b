// Package parameters holds the physical constants and rendering settings
// shared by all figure builders.
package parameters

type Parameters struct {
	SplittingGHz float64 // zero-field splitting D, GHz
	GyroGHzPerMT float64 // gyromagnetic ratio γ, GHz/mT
	ShiftGHzPerK float64 // temperature coefficient dD/dT, GHz/K
	RefTempK     float64 // temperature at which D is quoted, K
	AxisAngleDeg float64 // angle between the off-axis NV families and the bias field, degrees
	DPI          int     // raster resolution for PNG output
}

// NewDefault returns the textbook NV-center constants.
func NewDefault() *Parameters {
	return &Parameters{
		SplittingGHz: 2.87,      // GHz
		GyroGHzPerMT: 28.025e-3, // 28.025 GHz/T
		ShiftGHzPerK: -74.2e-6,  // -74.2 kHz/K
		RefTempK:     300,       // K
		AxisAngleDeg: 54.7,      // arccos(1/sqrt(3))
		DPI:          300,
	}
}
