package format

type Format int8

const (
	PNG Format = iota
	SVG
	PDF
)

// All lists every output format a figure is rendered to.
func All() []Format {
	return []Format{PNG, SVG, PDF}
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case SVG:
		return "svg"
	case PDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// Dir returns the per-format output subdirectory name.
func (f Format) Dir() string {
	return f.String()
}
