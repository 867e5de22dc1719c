package zpl

import "zplforge/internal/rle"

// Kind discriminates the payload carried by an Instruction.
type Kind int

const (
	KindText Kind = iota
	KindBitmap
	KindImage
	KindBox
	KindCircle
	KindEllipse
	KindCode39
	KindCode128
	KindQR
)

// RGB is a 24-bit color, defaulting to black (the ZPL default foreground).
type RGB struct {
	R, G, B uint8
}

var (
	ColorBlack = RGB{0, 0, 0}
	ColorWhite = RGB{255, 255, 255}
)

// Instruction is a fully-resolved, stateless drawing primitive: it carries
// absolute pixel coordinates and copies of every field the painter needs,
// so it never references the LabelState that produced it.
type Instruction struct {
	Kind Kind
	X, Y uint32

	// Box / Circle / Ellipse / Bitmap / Image / barcode extents.
	W, H uint32

	Thickness   uint32
	Rounding    uint32 // 0..8, Box only
	Color       RGB
	HasCustom   bool // true when Color came from a ^GLC/^GTC override
	Reverse     bool
	Orientation byte // N, R, I, B

	// Text.
	Font       byte
	FontHeight uint32
	FontWidth  uint32
	Text       string

	// Bitmap (^GF), already decoded during lowering.
	Image *rle.Bitmap

	// Custom color image (^GIC): deferred, resolved at render time since it
	// may reference caller-supplied bytes.
	ImageData string

	// Barcode (Code39/Code128/QR).
	Data            string
	ModuleWidth     uint32
	Ratio           float64
	CheckDigit      bool
	InterpLine      bool
	InterpLineAbove bool
	Model           uint32
	Mask            uint32
	ErrorCorr       byte

	// Field block (^FB) word-wrap parameters, Text only. The painter owns
	// wrapping since it's the layer with font metrics available.
	HasBlock         bool
	BlockWidth       uint32
	BlockMaxLines    uint32
	BlockLineSpacing uint32
	BlockJustify     byte
	BlockIndent      uint32
}
