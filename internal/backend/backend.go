// Package backend encodes a rasterized canvas into the artifact formats a
// caller actually wants on disk: PNG for archival/preview, PDF for a
// print-ready page sized to the label's physical dimensions.
package backend

import (
	"image"
	"io"
)

// Format selects the output encoding for Render.
type Format int

const (
	FormatPNG Format = iota
	FormatPDF
)

// Backend turns a rasterized label image into bytes on an io.Writer.
type Backend interface {
	Render(w io.Writer, img *image.RGBA, dpi int) error
}

// For returns the Backend for format; any format other than FormatPDF
// selects the PNG backend.
func For(format Format) Backend {
	switch format {
	case FormatPDF:
		return PDFBackend{}
	default:
		return PNGBackend{}
	}
}
