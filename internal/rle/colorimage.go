package rle

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// ErrInvalidImageData is returned when ^GIC payload cannot be decoded as
// Base64, or the decoded bytes are not a recognized raster format.
type ErrInvalidImageData struct {
	Reason string
}

func (e ErrInvalidImageData) Error() string {
	return fmt.Sprintf("invalid image data: %s", e.Reason)
}

// DecodeColorImage Base64-decodes payload, sniffs the embedded raster
// format (PNG/JPEG/GIF/BMP magic bytes, via image.Decode's registered
// format detection), and resamples to exactly w x h pixels using
// nearest-neighbor scaling when the source dimensions differ.
func DecodeColorImage(payload string, w, h uint32) (*image.RGBA, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, ErrInvalidImageData{Reason: "malformed base64: " + err.Error()}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidImageData{Reason: "unrecognized raster format: " + err.Error()}
	}

	if w == 0 || h == 0 {
		b := img.Bounds()
		w, h = uint32(b.Dx()), uint32(b.Dy())
	}

	return resizeNearest(img, int(w), int(h)), nil
}

// resizeNearest scales src to exactly w x h using nearest-neighbor
// sampling, matching the low-cost resampling thermal-printer pipelines use
// since source photos rarely need more fidelity than the dot grid allows.
func resizeNearest(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return dst
	}
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}

	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*sh/h
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*sw/w
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
