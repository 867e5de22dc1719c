// Package fontmgr resolves ZPL's single-character font identifiers (A-Z,
// 0-9) to loaded TrueType/OpenType outlines and rasterizes text with them.
package fontmgr

import (
	"errors"
	"image"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// identifiers lists every ZPL font slot, in the order a RegisterFont
// from..to range assignment walks them.
const identifiers = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Manager owns the registered font set and the identifier -> font mapping.
// A fresh Manager already has every identifier bound to the built-in
// fallback, so Resolve never returns nil.
type Manager struct {
	fonts    map[string]*truetype.Font
	bindings map[byte]string
}

// New returns a Manager with the built-in outline font (Go Regular,
// goregular, bundled via golang.org/x/image) bound to every identifier.
func New() *Manager {
	m := &Manager{
		fonts:    make(map[string]*truetype.Font),
		bindings: make(map[byte]string),
	}
	fallback, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// goregular.TTF is compiled into the binary; a parse failure here
		// would mean the golang.org/x/image module itself is broken.
		panic("fontmgr: embedded fallback font failed to parse: " + err.Error())
	}
	m.fonts["__default"] = fallback
	for i := 0; i < len(identifiers); i++ {
		m.bindings[identifiers[i]] = "__default"
	}
	return m
}

// RegisterFont loads TrueType/OpenType data under name and binds it to every
// ZPL identifier in [from, to] (inclusive), matching the `register_font`
// range-assignment behavior. from/to must both be in "A".."Z" or "0".."9".
func (m *Manager) RegisterFont(name string, data []byte, from, to byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return errors.New("fontmgr: invalid font data: " + err.Error())
	}
	m.fonts[name] = f

	start := indexOf(from)
	end := indexOf(to)
	if start < 0 || end < 0 || start > end {
		return nil // silently ignore an unassignable range
	}
	for i := start; i <= end; i++ {
		m.bindings[identifiers[i]] = name
	}
	return nil
}

func indexOf(id byte) int {
	for i := 0; i < len(identifiers); i++ {
		if identifiers[i] == id {
			return i
		}
	}
	return -1
}

// Resolve returns the outline bound to id, falling back to the built-in
// font for any identifier that was never explicitly registered.
func (m *Manager) Resolve(id byte) *truetype.Font {
	name, ok := m.bindings[id]
	if !ok {
		name = "__default"
	}
	return m.fonts[name]
}

// Draw rasterizes text at (x, y) -- the ZPL field origin, top-left of the
// text's bounding box -- into dst using the font bound to id, sized to fit
// heightDots tall. It returns the rendered advance width in dots.
func (m *Manager) Draw(dst draw.Image, text string, x, y int, id byte, heightDots uint32, src image.Image) (int, error) {
	f := m.Resolve(id)
	size := float64(heightDots)
	if size <= 0 {
		size = 10
	}

	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(src)
	c.SetHinting(font.HintingFull)

	pt := freetype.Pt(x, y+ascent)
	end, err := c.DrawString(text, pt)
	if err != nil {
		return 0, err
	}
	return (end.X.Round() - x), nil
}

// MeasureString returns the advance width, in dots, that Draw would produce
// for text at the given identifier and height -- used by the painter to
// wrap ^FB field blocks without actually rasterizing.
func (m *Manager) MeasureString(text string, id byte, heightDots uint32) int {
	f := m.Resolve(id)
	size := float64(heightDots)
	if size <= 0 {
		size = 10
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})

	var width fixed.Int26_6
	for _, r := range text {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		width += adv
	}
	return width.Round()
}
