package painter

import (
	"image"
	"image/draw"

	"zplforge/internal/barcode"
	"zplforge/internal/zpl"
)

// draw1DBarcode renders a module pattern (bars/spaces) as a row of vertical
// bars moduleWidth dots wide and height dots tall, optionally with an
// interpretation line above or below, then orients the whole strip per the
// field's N/R/I/B rotation code before compositing -- the same
// "render upright, then rotate the rect" technique the text painter uses.
func (c *Canvas) draw1DBarcode(in zpl.Instruction, pattern barcode.Pattern) {
	moduleWidth := in.ModuleWidth
	if moduleWidth == 0 {
		moduleWidth = 2
	}
	lineHeight := in.H
	if lineHeight == 0 {
		lineHeight = 10
	}

	interpHeight := uint32(0)
	if in.InterpLine {
		interpHeight = in.FontHeight
		if interpHeight == 0 {
			interpHeight = 10
		}
	}

	barsWidth := int(pattern.Width) * int(moduleWidth)
	if barsWidth == 0 {
		barsWidth = 1
	}
	totalHeight := int(lineHeight + interpHeight)

	scratch := image.NewRGBA(image.Rect(0, 0, barsWidth, totalHeight))
	draw.Draw(scratch, scratch.Bounds(), image.White, image.Point{}, draw.Src)

	col, _ := colorsFor(in)
	barsTop := 0
	if in.InterpLine && in.InterpLineAbove {
		barsTop = int(interpHeight)
	}

	offset := 0
	for _, set := range pattern.Bars() {
		if set {
			fillRectImg(scratch, offset, barsTop, moduleWidth, lineHeight, col)
		}
		offset += int(moduleWidth)
	}

	if in.InterpLine {
		textY := 0
		if !in.InterpLineAbove {
			textY = int(lineHeight)
		}
		textW := c.fonts.MeasureString(in.Data, in.Font, interpHeight)
		tx := (barsWidth - textW) / 2
		if tx < 0 {
			tx = 0
		}
		c.fonts.Draw(scratch, in.Data, tx, textY, in.Font, interpHeight, image.NewUniform(col))
	}

	c.compositeOriented(scratch, in)
}

// compositeOriented rotates a rendered symbol block per its field
// orientation code and draws it at the field's origin, XOR-compositing it
// when reverse-video is requested instead of painting over the canvas.
func (c *Canvas) compositeOriented(scratch *image.RGBA, in zpl.Instruction) {
	oriented := orient(scratch, in.Orientation)
	x, y := int(in.X), int(in.Y)
	if in.Reverse {
		c.xorOverlay(oriented, x, y)
		return
	}
	draw.Draw(c.img, image.Rect(x, y, x+oriented.Bounds().Dx(), y+oriented.Bounds().Dy()), oriented, image.Point{}, draw.Over)
}

func (c *Canvas) paintCode39(in zpl.Instruction) {
	pattern := barcode.EncodeCode39(in.Data, in.CheckDigit, in.Ratio)
	c.draw1DBarcode(in, pattern)
}

func (c *Canvas) paintCode128(in zpl.Instruction) {
	pattern := barcode.EncodeCode128(in.Data)
	c.draw1DBarcode(in, pattern)
}

// paintQR scales each QR module up by ModuleWidth (^BQ's magnification
// factor) and blits the result, oriented per the field rotation code.
func (c *Canvas) paintQR(in zpl.Instruction) {
	matrix, err := barcode.EncodeQR(in.Data, in.ErrorCorr)
	if err != nil {
		return
	}
	scale := int(in.ModuleWidth)
	if scale <= 0 {
		scale = 1
	}

	size := matrix.Size * scale
	scratch := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(scratch, scratch.Bounds(), image.White, image.Point{}, draw.Src)

	col, _ := colorsFor(in)
	for my := 0; my < matrix.Size; my++ {
		for mx := 0; mx < matrix.Size; mx++ {
			if !matrix.At(mx, my) {
				continue
			}
			fillRectImg(scratch, mx*scale, my*scale, uint32(scale), uint32(scale), col)
		}
	}

	c.compositeOriented(scratch, in)
}
