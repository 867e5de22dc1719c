package zpl

import "zplforge/internal/rle"

// fontSpec captures a font selection: identifier plus optional height/width/
// orientation overrides. A nil pointer means "inherit".
type fontSpec struct {
	id          byte
	orientation *byte
	height      *uint32
	width       *uint32
}

type barcodeDefaults struct {
	moduleWidth uint32
	ratio       float64
	height      uint32
}

type blockParams struct {
	width       uint32
	maxLines    uint32
	lineSpacing uint32
	justify     byte
	indent      uint32
	active      bool
}

// labelState is the mutable simulation carried across commands while
// lowering a parsed command stream into instructions. It is created fresh
// per label and discarded once lowering finishes; no Instruction retains a
// reference to it.
type labelState struct {
	defaultFont fontSpec
	currentFont *fontSpec

	originX, originY uint32
	baseline         bool
	hasOrigin        bool

	homeX, homeY uint32

	pendingData    string
	hasPendingData bool
	pendingReverse bool
	pendingBlock   blockParams

	barcode barcodeDefaults

	lineColor   RGB
	textColor   RGB
	hasLineHex  bool
	hasTextHex  bool

	openFormat  bool
	sawFormat   bool
	labelClosed bool

	// The "cursor": bottom-left corner of the most recently emitted
	// instruction, used as the default origin when a field omits ^FO/^FT.
	cursorX, cursorY uint32

	pending pendingInstruction
}

// pendingInstruction accumulates the kind and kind-specific parameters for
// the field currently being built, reset on every emit (FieldSeparator or
// the implicit flush at ^XZ).
type pendingInstruction struct {
	kind   Kind
	active bool

	w, h      uint32
	thickness uint32
	rounding  uint32
	color     byte // 'B' or 'W'
	customHex string
	hasCustom bool

	orientation byte
	moduleWidth uint32
	checkDigit  bool
	interpLine  bool
	interpAbove bool
	model       uint32
	mask        uint32
	errorCorr   byte

	image *rle.Bitmap

	imageDataB64 string
}

func newLabelState() *labelState {
	return &labelState{
		defaultFont: fontSpec{id: 'A', height: h10(), width: h10()},
		barcode:     barcodeDefaults{moduleWidth: 2, ratio: 3.0, height: 10},
		lineColor:   ColorBlack,
		textColor:   ColorBlack,
	}
}

func h10() *uint32 {
	v := uint32(10)
	return &v
}

// Lower consumes a parsed command sequence and produces the flat,
// fully-resolved instruction list described in section 4.2 of the
// specification. It returns FormatError if the stream never opens a label
// (^XA) or closes one that was never opened (^XZ).
func Lower(commands []Command) ([]Instruction, error) {
	st := newLabelState()
	var out []Instruction

	for _, cmd := range commands {
		if cmd.Unknown {
			continue
		}

		// Only the first ^XA...^XZ pair in the input is rendered; once it
		// has closed, every subsequent command -- including a second ^XA --
		// is ignored outright.
		if st.labelClosed {
			continue
		}

		switch cmd.Op {
		case "XA":
			if st.openFormat {
				continue // nested ^XA: ignore, already open
			}
			st.openFormat = true
			st.sawFormat = true
			st.resetPending()

		case "XZ":
			if !st.openFormat {
				if !st.sawFormat {
					return nil, FormatError{Reason: "^XZ encountered without a matching ^XA"}
				}
				continue
			}
			st.flush(&out)
			st.openFormat = false
			st.labelClosed = true

		case "LH":
			if !st.openFormat {
				continue
			}
			st.homeX = parseUint(cmd.Param(0), st.homeX)
			st.homeY = parseUint(cmd.Param(1), st.homeY)

		case "LL":
			// Label length is a page-geometry hint, not a drawing
			// instruction; the engine consumes it from the caller's
			// explicit dimensions instead, so it's accepted and ignored.

		case "CI":
			// International character set selection: accepted for
			// compatibility, but this engine only emits the outline fonts
			// bound in the font manager, so no remapping
			// happens here.

		case "FX":
			// Comment: no state change, no instruction.

		case "CC", "CT":
			// Control character reassignment is handled entirely in the
			// lexer; nothing to do at this layer.

		case "FO":
			if !st.openFormat {
				continue
			}
			st.originX = parseUint(cmd.Param(0), st.originX)
			st.originY = parseUint(cmd.Param(1), st.originY)
			st.baseline = false
			st.hasOrigin = true

		case "FT":
			if !st.openFormat {
				continue
			}
			st.originX = parseUint(cmd.Param(0), st.originX)
			st.originY = parseUint(cmd.Param(1), st.originY)
			st.baseline = true
			st.hasOrigin = true

		case "FR":
			if !st.openFormat {
				continue
			}
			st.pendingReverse = true

		case "CF":
			if !st.openFormat {
				continue
			}
			st.defaultFont.id = parseSymbol(cmd.Param(0), st.defaultFont.id)
			if v := cmd.Param(1); v != "" {
				h := parseUint(v, 0)
				st.defaultFont.height = &h
			}
			if v := cmd.Param(2); v != "" {
				w := parseUint(v, 0)
				st.defaultFont.width = &w
			}

		case "A":
			// ^A<font><orientation>,<height>,<width>: the font letter and
			// orientation code share the first comma-delimited field.
			if !st.openFormat {
				continue
			}
			fo := cmd.Param(0)
			cf := fontSpec{id: st.defaultFont.id}
			if len(fo) >= 1 {
				cf.id = fo[0]
			}
			if len(fo) >= 2 {
				o := fo[1]
				cf.orientation = &o
			}
			if v := cmd.Param(1); v != "" {
				h := parseUint(v, 0)
				cf.height = &h
			}
			if v := cmd.Param(2); v != "" {
				w := parseUint(v, 0)
				cf.width = &w
			}
			st.currentFont = &cf

		case "FB":
			if !st.openFormat {
				continue
			}
			st.pendingBlock = blockParams{
				active:      true,
				width:       parseUint(cmd.Param(0), 0),
				maxLines:    parseUint(cmd.Param(1), 1),
				lineSpacing: parseUint(cmd.Param(2), 0),
				justify:     parseSymbol(cmd.Param(3), 'L'),
				indent:      parseUint(cmd.Param(4), 0),
			}

		case "BY":
			if !st.openFormat {
				continue
			}
			st.barcode.moduleWidth = parseUintClamped(cmd.Param(0), st.barcode.moduleWidth, 1, 10)
			st.barcode.ratio = parseFloatClamped(cmd.Param(1), st.barcode.ratio, 2.0, 3.0)
			st.barcode.height = parseUint(cmd.Param(2), st.barcode.height)

		case "GLC":
			if !st.openFormat {
				continue
			}
			if c, ok := parseHexColor(cmd.Param(0)); ok {
				st.lineColor = c
				st.hasLineHex = true
			}

		case "GTC":
			if !st.openFormat {
				continue
			}
			raw := cmd.Param(0)
			if c, ok := parseHexColor(raw); ok {
				st.textColor = c
				st.hasTextHex = true
			}

		case "GB":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindBox
			st.pending.w = parseUint(cmd.Param(0), 0)
			st.pending.h = parseUint(cmd.Param(1), 0)
			st.pending.thickness = parseUint(cmd.Param(2), 1)
			if st.pending.thickness == 0 {
				st.pending.thickness = 1
			}
			st.pending.color = parseSymbol(cmd.Param(3), 'B')
			st.pending.rounding = parseUintClamped(cmd.Param(4), 0, 0, 8)

		case "GC":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindCircle
			d := parseUint(cmd.Param(0), 0)
			st.pending.w, st.pending.h = d, d
			st.pending.thickness = parseUint(cmd.Param(1), 1)
			if st.pending.thickness == 0 {
				st.pending.thickness = 1
			}
			st.pending.color = parseSymbol(cmd.Param(2), 'B')

		case "GE":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindEllipse
			st.pending.w = parseUint(cmd.Param(0), 0)
			st.pending.h = parseUint(cmd.Param(1), 0)
			st.pending.thickness = parseUint(cmd.Param(2), 1)
			if st.pending.thickness == 0 {
				st.pending.thickness = 1
			}
			st.pending.color = parseSymbol(cmd.Param(3), 'B')

		case "GF":
			if !st.openFormat {
				continue
			}
			compression := parseSymbol(cmd.Param(0), 'A')
			bytesPerRow := parseUint(cmd.Param(3), 0)
			totalBytes := parseUint(cmd.Param(2), 0)
			if compression != 'A' {
				continue // only hex-RLE (type A) is in scope
			}
			bmp, err := rle.Decode(cmd.Data, bytesPerRow, totalBytes)
			if err != nil {
				return nil, err
			}
			st.pending.active = true
			st.pending.kind = KindBitmap
			st.pending.image = bmp
			st.pending.w, st.pending.h = bmp.Width, bmp.Height

		case "GIC":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindImage
			st.pending.w = parseUint(cmd.Param(0), 0)
			st.pending.h = parseUint(cmd.Param(1), 0)
			st.pending.imageDataB64 = cmd.Param(2)

		case "B3":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindCode39
			st.pending.orientation = parseSymbol(cmd.Param(0), 'N')
			st.pending.checkDigit = parseSymbol(cmd.Param(1), 'N') == 'Y'
			st.pending.h = orDefault(parseUint(cmd.Param(2), 0), st.barcode.height, 10)
			st.pending.interpLine = parseSymbol(cmd.Param(3), 'Y') == 'Y'
			st.pending.interpAbove = parseSymbol(cmd.Param(4), 'N') == 'Y'
			st.pending.moduleWidth = orDefault(0, st.barcode.moduleWidth, 2)

		case "BC":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindCode128
			st.pending.orientation = parseSymbol(cmd.Param(0), 'N')
			st.pending.h = orDefault(parseUint(cmd.Param(1), 0), st.barcode.height, 10)
			st.pending.interpLine = parseSymbol(cmd.Param(2), 'Y') == 'Y'
			st.pending.interpAbove = parseSymbol(cmd.Param(3), 'N') == 'Y'
			st.pending.checkDigit = parseSymbol(cmd.Param(4), 'N') == 'Y'
			st.pending.moduleWidth = orDefault(0, st.barcode.moduleWidth, 2)

		case "BQ":
			if !st.openFormat {
				continue
			}
			st.pending.active = true
			st.pending.kind = KindQR
			st.pending.orientation = parseSymbol(cmd.Param(0), 'N')
			st.pending.model = parseUint(cmd.Param(1), 2)
			st.pending.moduleWidth = orDefault(parseUintClamped(cmd.Param(2), 0, 1, 10), st.barcode.moduleWidth, 4)
			st.pending.errorCorr = parseSymbol(cmd.Param(3), 'M')
			st.pending.mask = parseUintClamped(cmd.Param(4), 7, 0, 7)

		case "FD":
			st.pendingData = cmd.Data
			st.hasPendingData = true

		case "FS":
			if !st.openFormat {
				continue
			}
			st.flush(&out)
		}
	}

	if !st.sawFormat {
		return nil, FormatError{Reason: "no ^XA found in input"}
	}
	if st.openFormat {
		st.flush(&out)
	}

	return out, nil
}

// orDefault returns explicit (if nonzero), else fallback (if nonzero), else
// finalDefault.
func orDefault(explicit, fallback, finalDefault uint32) uint32 {
	if explicit != 0 {
		return explicit
	}
	if fallback != 0 {
		return fallback
	}
	return finalDefault
}

func parseHexColor(s string) (RGB, bool) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, false
	}
	var vals [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[1+i*2])
		lo, ok2 := hexDigit(s[2+i*2])
		if !ok1 || !ok2 {
			return RGB{}, false
		}
		vals[i] = hi<<4 | lo
	}
	return RGB{vals[0], vals[1], vals[2]}, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// resetPending clears per-field accumulation at ^XA, as if a fresh label
// had never seen any prior command.
func (st *labelState) resetPending() {
	st.pendingData = ""
	st.hasPendingData = false
	st.pendingReverse = false
	st.pendingBlock = blockParams{}
	st.currentFont = nil
	st.hasOrigin = false
	st.pending = pendingInstruction{}
}

// flush finalizes the field currently under construction -- as ^FS would --
// appending an Instruction when there's anything to emit, then clears all
// pending_* state as section 4.2 and 9 require.
func (st *labelState) flush(out *[]Instruction) {
	x, y := st.effectiveOrigin()

	if st.pending.active {
		instr := Instruction{
			Kind:      st.pending.kind,
			X:         x,
			Y:         y,
			W:         st.pending.w,
			H:         st.pending.h,
			Thickness: st.pending.thickness,
			Rounding:  st.pending.rounding,
			Reverse:   st.pendingReverse,
		}
		if instr.Thickness == 0 {
			instr.Thickness = 1
		}
		instr.Color = colorFor(st.pending.color, st.lineColor, st.hasLineHex)
		instr.HasCustom = st.hasLineHex

		switch st.pending.kind {
		case KindBitmap:
			instr.Image = st.pending.image
		case KindImage:
			instr.ImageData = st.pending.imageDataB64
		case KindCode39, KindCode128, KindQR:
			if !st.hasPendingData {
				// Barcode commands with no ^FD yield no instruction.
				st.advanceCursor(x, y, instr.W, instr.H)
				st.clearPending()
				return
			}
			instr.Data = st.pendingData
			instr.Orientation = st.pending.orientation
			instr.ModuleWidth = st.pending.moduleWidth
			instr.Ratio = st.barcode.ratio
			instr.CheckDigit = st.pending.checkDigit
			instr.InterpLine = st.pending.interpLine
			instr.InterpLineAbove = st.pending.interpAbove
			instr.Model = st.pending.model
			instr.Mask = st.pending.mask
			instr.ErrorCorr = st.pending.errorCorr
		}

		*out = append(*out, instr)
		st.advanceCursor(x, y, instr.W, instr.H)
	} else if st.hasPendingData {
		font := st.effectiveFont()
		instr := Instruction{
			Kind:       KindText,
			X:          x,
			Y:          y,
			Font:       font.id,
			FontHeight: derefOr(font.height, 10),
			FontWidth:  derefOr(font.width, 0),
			Text:       st.pendingData,
			Reverse:    st.pendingReverse,
			Color:      colorForText(st.textColor, st.hasTextHex),
			HasCustom:  st.hasTextHex,
		}
		if font.orientation != nil {
			instr.Orientation = *font.orientation
		} else {
			instr.Orientation = 'N'
		}
		if st.pendingBlock.active {
			instr.HasBlock = true
			instr.BlockWidth = st.pendingBlock.width
			instr.BlockMaxLines = st.pendingBlock.maxLines
			instr.BlockLineSpacing = st.pendingBlock.lineSpacing
			instr.BlockJustify = st.pendingBlock.justify
			instr.BlockIndent = st.pendingBlock.indent
		}

		*out = append(*out, instr)
		st.advanceCursor(x, y, instr.FontWidth, instr.FontHeight)
	}

	st.clearPending()
}

func (st *labelState) clearPending() {
	st.pendingData = ""
	st.hasPendingData = false
	st.currentFont = nil
	st.pendingReverse = false
	st.pendingBlock = blockParams{}
	st.hasOrigin = false
	st.pending = pendingInstruction{}
}

// effectiveOrigin resolves the field's absolute position: an explicit
// ^FO/^FT (offset by ^LH's label home), or the cursor left by the
// previously emitted instruction.
func (st *labelState) effectiveOrigin() (uint32, uint32) {
	if st.hasOrigin {
		return saturatingAddU32(st.originX, st.homeX), saturatingAddU32(st.originY, st.homeY)
	}
	return st.cursorX, st.cursorY
}

func (st *labelState) advanceCursor(x, y, w, h uint32) {
	st.cursorX = x
	st.cursorY = saturatingAddU32(y, h)
}

func (st *labelState) effectiveFont() fontSpec {
	f := st.defaultFont
	if st.currentFont != nil {
		f.id = st.currentFont.id
		if st.currentFont.height != nil {
			f.height = st.currentFont.height
		}
		if st.currentFont.width != nil {
			f.width = st.currentFont.width
		}
		if st.currentFont.orientation != nil {
			f.orientation = st.currentFont.orientation
		}
	}
	return f
}

func derefOr(p *uint32, def uint32) uint32 {
	if p == nil {
		return def
	}
	return *p
}

func colorFor(symbol byte, custom RGB, hasCustom bool) RGB {
	if hasCustom {
		return custom
	}
	if symbol == 'W' {
		return ColorWhite
	}
	return ColorBlack
}

func colorForText(custom RGB, hasCustom bool) RGB {
	if hasCustom {
		return custom
	}
	return ColorBlack
}
