// Package painter composes a resolved instruction stream onto an RGBA
// canvas: lines, rounded boxes, circles, ellipses, bitmaps, color images,
// barcodes and text, with reverse-video handled as an XOR overlay.
package painter

import (
	"image"
	"image/color"
	"image/draw"

	"zplforge/internal/fontmgr"
	"zplforge/internal/zpl"
)

// MaxCanvasDots caps both canvas dimensions. Anything larger is rejected by
// the caller (the label engine) before a Canvas is ever created.
const MaxCanvasDots = 8192

// Canvas is a fixed-size RGBA label surface, white by default.
type Canvas struct {
	img   *image.RGBA
	fonts *fontmgr.Manager
}

// NewCanvas allocates a width x height canvas, filled white, and binds a
// font manager for text/interpretation-line rendering.
func NewCanvas(width, height uint32, fonts *fontmgr.Manager) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &Canvas{img: img, fonts: fonts}
}

// Image returns the underlying RGBA buffer, ready for a backend to encode.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func toRGBAColor(c zpl.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// xorOverlay flips every non-white pixel of src onto the canvas at (x, y).
// ^FR reverse video renders into a white scratch buffer first, then XORs
// whatever ended up non-white onto the page.
func (c *Canvas) xorOverlay(src *image.RGBA, x, y int) {
	b := src.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		dy := y + (sy - b.Min.Y)
		if dy < 0 || dy >= c.img.Bounds().Dy() {
			continue
		}
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			dx := x + (sx - b.Min.X)
			if dx < 0 || dx >= c.img.Bounds().Dx() {
				continue
			}
			r, g, bl, _ := src.At(sx, sy).RGBA()
			if r>>8 == 255 && g>>8 == 255 && bl>>8 == 255 {
				continue
			}
			cur := c.img.RGBAAt(dx, dy)
			c.img.SetRGBA(dx, dy, color.RGBA{
				R: cur.R ^ 0xFF,
				G: cur.G ^ 0xFF,
				B: cur.B ^ 0xFF,
				A: 255,
			})
		}
	}
}

// drawReversible runs op against a fresh white-background scratch buffer of
// size w x h and XORs the result onto the canvas when reverse is set;
// otherwise it draws straight onto the canvas.
func (c *Canvas) drawReversible(x, y int, w, h uint32, reverse bool, op func(dst *image.RGBA, ox, oy int)) {
	if !reverse {
		op(c.img, x, y)
		return
	}
	if w == 0 || h == 0 {
		return
	}
	scratch := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(scratch, scratch.Bounds(), image.White, image.Point{}, draw.Src)
	op(scratch, 0, 0)
	c.xorOverlay(scratch, x, y)
}

// Paint renders every instruction onto the canvas in order, resolving ^GIC
// custom images from the caller-supplied name->bytes map when the payload
// isn't itself Base64 image data.
func (c *Canvas) Paint(instrs []zpl.Instruction, images map[string][]byte) error {
	for _, in := range instrs {
		if err := c.paintOne(in, images); err != nil {
			return err
		}
	}
	return nil
}

func (c *Canvas) paintOne(in zpl.Instruction, images map[string][]byte) error {
	switch in.Kind {
	case zpl.KindBox:
		c.paintBox(in)
	case zpl.KindCircle:
		c.paintCircle(in)
	case zpl.KindEllipse:
		c.paintEllipse(in)
	case zpl.KindBitmap:
		c.paintBitmap(in)
	case zpl.KindImage:
		return c.paintImage(in, images)
	case zpl.KindText:
		c.paintText(in)
	case zpl.KindCode39:
		c.paintCode39(in)
	case zpl.KindCode128:
		c.paintCode128(in)
	case zpl.KindQR:
		c.paintQR(in)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
