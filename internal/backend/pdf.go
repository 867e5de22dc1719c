package backend

import (
	"bytes"
	"image"
	"image/png"
	"io"

	scribe "github.com/kofi-q/scribe-go"
)

// PDFBackend embeds the rasterized canvas as a single full-page image, sized
// to the label's physical dimensions at the given DPI, the way a label
// printer's PDF export plugin would: one page, one image, no reflow.
type PDFBackend struct{}

func (PDFBackend) Render(w io.Writer, img *image.RGBA, dpi int) error {
	if dpi <= 0 {
		dpi = 203
	}
	b := img.Bounds()
	widthMM := float32(b.Dx()) / float32(dpi) * 25.4
	heightMM := float32(b.Dy()) / float32(dpi) * 25.4

	fontSet := scribe.NewFontSet(0)
	pdf := scribe.New("P", "mm", scribe.PageSizeA4, &fontSet)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", scribe.PageSize{Wd: widthMM, Ht: heightMM})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	pdf.RegisterImageReader("label", "PNG", &buf)
	pdf.Image("label", 0, 0, widthMM, heightMM, false, "PNG", 0, "")

	return pdf.Output(w)
}
