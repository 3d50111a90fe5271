// Package docpdf implements the binary page backend for go-docgen.
//
// It draws resolved templates directly into a single-page PDF with data
// values baked in at draw time; there is no placeholder stage on this
// path. Geometry is consumed in points with a top-left origin, matching
// the template schema convention.
package docpdf
