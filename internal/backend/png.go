package backend

import (
	"image"
	"image/png"
	"io"
)

// PNGBackend writes the canvas straight through stdlib's encoder. No
// third-party PNG encoder in the example pack offers anything beyond what
// image/png already does for a plain RGBA buffer, so this is one of the few
// places that stays on the standard library.
type PNGBackend struct{}

func (PNGBackend) Render(w io.Writer, img *image.RGBA, dpi int) error {
	return png.Encode(w, img)
}
