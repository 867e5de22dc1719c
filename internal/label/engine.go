// Package label is the top-level entry point: it converts physical label
// geometry into a dot-pixel canvas, runs the parse -> lower -> paint
// pipeline, and hands the result to a backend for encoding.
package label

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"zplforge/internal/backend"
	"zplforge/internal/fontmgr"
	"zplforge/internal/painter"
	"zplforge/internal/zpl"
)

// Unit is a physical length unit for label geometry.
type Unit int

const (
	UnitInches Unit = iota
	UnitMillimeters
	UnitCentimeters
)

func (u Unit) toInches(v float64) float64 {
	switch u {
	case UnitMillimeters:
		return v / 25.4
	case UnitCentimeters:
		return v / 2.54
	default:
		return v
	}
}

// Resolution is one of the printer dot densities ZPL labels are designed
// around.
type Resolution int

const (
	Res152DPI Resolution = 152
	Res203DPI Resolution = 203
	Res300DPI Resolution = 300
	Res600DPI Resolution = 600
)

// CanvasTooLarge is returned when the requested physical size and
// resolution would exceed the pixel cap on either axis.
type CanvasTooLarge struct {
	Width, Height uint32
}

func (e CanvasTooLarge) Error() string {
	return fmt.Sprintf("zplforge: canvas %dx%d exceeds the %dx%d pixel limit", e.Width, e.Height, painter.MaxCanvasDots, painter.MaxCanvasDots)
}

// ErrNoValidResolution is returned when a Resolution outside the enumerated
// set is requested.
var ErrNoValidResolution = errors.New("zplforge: resolution must be one of 152, 203, 300, 600 dpi")

// Engine renders raw ZPL bytes against a fixed physical geometry.
type Engine struct {
	data       []byte
	width      uint32
	height     uint32
	resolution Resolution
	fonts      *fontmgr.Manager
}

// New builds an Engine from raw ZPL source and a label's physical
// dimensions at the given unit and resolution. Dimensions are converted to
// dots as ceil(value_inches * dpi); a dimension above painter.MaxCanvasDots
// is a fatal construction error (CanvasTooLarge), and a zero dimension
// becomes 1 dot.
func New(data []byte, width, height float64, unit Unit, resolution Resolution) (*Engine, error) {
	switch resolution {
	case Res152DPI, Res203DPI, Res300DPI, Res600DPI:
	default:
		return nil, ErrNoValidResolution
	}

	dpi := float64(resolution)
	wDots := dotsFor(unit.toInches(width), dpi)
	hDots := dotsFor(unit.toInches(height), dpi)

	if wDots > painter.MaxCanvasDots || hDots > painter.MaxCanvasDots {
		return nil, CanvasTooLarge{Width: wDots, Height: hDots}
	}
	if wDots == 0 {
		wDots = 1
	}
	if hDots == 0 {
		hDots = 1
	}

	return &Engine{
		data:       data,
		width:      wDots,
		height:     hDots,
		resolution: resolution,
		fonts:      fontmgr.New(),
	}, nil
}

func dotsFor(valueInches, dpi float64) uint32 {
	if valueInches <= 0 {
		return 0
	}
	return uint32(math.Ceil(valueInches * dpi))
}

// RegisterFont loads a TrueType/OpenType font and binds it to the ZPL font
// identifiers in [from, to], overriding the built-in fallback for that
// range.
func (e *Engine) RegisterFont(name string, data []byte, from, to byte) error {
	return e.fonts.RegisterFont(name, data, from, to)
}

// Instructions parses and lowers the label's ZPL source without
// rasterizing it, useful for inspection/testing.
func (e *Engine) Instructions() ([]zpl.Instruction, error) {
	commands, _ := zpl.Parse(e.data)
	return zpl.Lower(commands)
}

// Render runs the full pipeline and writes the encoded artifact to w.
// images supplies raw bytes for any ^GIC reference that isn't itself
// inline Base64 image data.
func (e *Engine) Render(w io.Writer, format backend.Format, images map[string][]byte) error {
	instrs, err := e.Instructions()
	if err != nil {
		return err
	}

	canvas := painter.NewCanvas(e.width, e.height, e.fonts)
	if err := canvas.Paint(instrs, images); err != nil {
		return err
	}

	return backend.For(format).Render(w, canvas.Image(), int(e.resolution))
}

// Canvas exposes the rasterized image directly, bypassing a backend --
// useful for callers that want to post-process pixels before encoding.
func (e *Engine) Canvas(images map[string][]byte) (*image.RGBA, error) {
	instrs, err := e.Instructions()
	if err != nil {
		return nil, err
	}
	canvas := painter.NewCanvas(e.width, e.height, e.fonts)
	if err := canvas.Paint(instrs, images); err != nil {
		return nil, err
	}
	return canvas.Image(), nil
}
