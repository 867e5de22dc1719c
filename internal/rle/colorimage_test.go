package rle

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodedTestPNG(t *testing.T, w, h int, fill color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture PNG: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeColorImagePreservesDimensionsWhenUnspecified(t *testing.T) {
	payload := encodedTestPNG(t, 4, 6, color.RGBA{255, 0, 0, 255})

	img, err := DecodeColorImage(payload, 0, 0)
	if err != nil {
		t.Fatalf("DecodeColorImage: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 6 {
		t.Fatalf("got %dx%d, want 4x6", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecodeColorImageResizesToRequestedDimensions(t *testing.T) {
	payload := encodedTestPNG(t, 2, 2, color.RGBA{0, 255, 0, 255})

	img, err := DecodeColorImage(payload, 10, 20)
	if err != nil {
		t.Fatalf("DecodeColorImage: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 20 {
		t.Fatalf("got %dx%d, want 10x20", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecodeColorImageRejectsGarbage(t *testing.T) {
	_, err := DecodeColorImage("not-valid-base64!!!", 1, 1)
	if err == nil {
		t.Fatal("expected an error for malformed payload")
	}
}

func TestDecodeColorImageRejectsUnrecognizedFormat(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("this is not an image"))
	_, err := DecodeColorImage(payload, 1, 1)
	if err == nil {
		t.Fatal("expected an error for unrecognized raster format")
	}
	if _, ok := err.(ErrInvalidImageData); !ok {
		t.Fatalf("got error %T, want ErrInvalidImageData", err)
	}
}
