package docgen

// DefaultScaleFactor converts page-space points into CSS pixels for the
// markup backend. The designer pins the literal constant 1.333 rather than
// the exact 96/72 ratio; changing it moves every pixel value in stored
// artifacts, so it is part of the output contract.
const DefaultScaleFactor = 1.333

// Transform converts page-space units into backend units. It is pure and
// deterministic; the two backends never share a conversion path.
type Transform struct {
	// ScaleFactor is the points-to-pixels ratio for the markup backend.
	// Zero means DefaultScaleFactor.
	ScaleFactor float64
}

// Pixels converts a page-space value into a truncated integer pixel value
// for the markup backend. Truncation toward zero can lose up to one pixel
// per value; that drift is deterministic and covered by tests.
func (t Transform) Pixels(v float64) int {
	return int(v * t.scale())
}

// Points returns the page-space value unchanged; the binary backend is
// already points-based.
func (t Transform) Points(v float64) float64 {
	return v
}

func (t Transform) scale() float64 {
	if t.ScaleFactor == 0 {
		return DefaultScaleFactor
	}
	return t.ScaleFactor
}
