package backend

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func sampleImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for x := 0; x < 20; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(0, 0, color.Black)
	return img
}

func TestPNGBackendProducesValidHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := (PNGBackend{}).Render(&buf, sampleImage(), 203); err != nil {
		t.Fatalf("Render: %v", err)
	}
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if !bytes.HasPrefix(buf.Bytes(), sig) {
		t.Errorf("output does not start with a PNG signature")
	}
}

func TestPDFBackendProducesValidHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := (PDFBackend{}).Render(&buf, sampleImage(), 203); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestForSelectsBackendByFormat(t *testing.T) {
	if _, ok := For(FormatPNG).(PNGBackend); !ok {
		t.Errorf("expected FormatPNG to select PNGBackend")
	}
	if _, ok := For(FormatPDF).(PDFBackend); !ok {
		t.Errorf("expected FormatPDF to select PDFBackend")
	}
}
