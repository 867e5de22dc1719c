package painter

import (
	"image"
	"image/draw"
	"strings"

	"zplforge/internal/zpl"
)

// rotate90CW and rotate90CCW orient a rendered field per its rotation code.
func rotate90CW(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func rotate90CCW(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func rotate180(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, h-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// wrapLines breaks text into lines no wider than maxWidth dots, splitting
// on word boundaries and falling back to a mid-word break when a single
// word alone overflows the line.
func wrapLines(text string, measure func(string) int, maxWidth int) []string {
	if maxWidth <= 0 {
		return strings.Split(text, "\n")
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			test := current + " " + word
			if measure(test) > maxWidth {
				lines = append(lines, current)
				if measure(word) > maxWidth {
					current = breakLongWord(word, measure, maxWidth, &lines)
				} else {
					current = word
				}
			} else {
				current = test
			}
		}
		lines = append(lines, current)
	}
	return lines
}

func breakLongWord(word string, measure func(string) int, maxWidth int, lines *[]string) string {
	var current string
	for _, r := range word {
		test := current + string(r)
		if measure(test) > maxWidth && current != "" {
			*lines = append(*lines, current)
			current = string(r)
		} else {
			current = test
		}
	}
	return current
}

// paintText rasterizes a text field, wrapping it within ^FB's bounds when
// present, then rotating the whole rendered block per the field's
// orientation code before compositing it onto the canvas.
func (c *Canvas) paintText(in zpl.Instruction) {
	if in.Text == "" {
		return
	}
	height := in.FontHeight
	if height == 0 {
		height = 10
	}
	lineSpacing := in.BlockLineSpacing
	if lineSpacing == 0 {
		lineSpacing = height + height/5
	}

	measure := func(s string) int { return c.fonts.MeasureString(s, in.Font, height) }

	var lines []string
	if in.HasBlock && in.BlockWidth > 0 {
		lines = wrapLines(in.Text, measure, int(in.BlockWidth)-int(in.BlockIndent))
		if in.BlockMaxLines > 0 && uint32(len(lines)) > in.BlockMaxLines {
			lines = lines[:in.BlockMaxLines]
		}
	} else {
		lines = strings.Split(in.Text, "\n")
	}

	blockWidth := in.BlockWidth
	if blockWidth == 0 {
		for _, l := range lines {
			if w := uint32(measure(l)); w > blockWidth {
				blockWidth = w
			}
		}
	}
	blockHeight := uint32(len(lines))*lineSpacing + height

	col, _ := colorsFor(in)
	fg := image.NewUniform(col)

	scratch := image.NewRGBA(image.Rect(0, 0, int(blockWidth)+1, int(blockHeight)+1))
	draw.Draw(scratch, scratch.Bounds(), image.White, image.Point{}, draw.Src)

	ty := 0
	for _, line := range lines {
		tx := int(in.BlockIndent)
		if in.HasBlock {
			lw := measure(line)
			switch in.BlockJustify {
			case 'C':
				tx = (int(blockWidth) - lw) / 2
			case 'R':
				tx = int(blockWidth) - lw
			}
			if tx < 0 {
				tx = 0
			}
		}
		c.fonts.Draw(scratch, line, tx, ty, in.Font, height, fg)
		ty += int(lineSpacing)
	}

	c.compositeOriented(scratch, in)
}

// orient rotates a rendered text or barcode block per its orientation code: N
// (normal), R (90 CW), I (180), B (90 CCW, "bottom up").
func orient(img *image.RGBA, code byte) *image.RGBA {
	switch code {
	case 'R':
		return rotate90CW(img)
	case 'I':
		return rotate180(img)
	case 'B':
		return rotate90CCW(img)
	default:
		return img
	}
}
