// Package zpl implements a lexer and label-state engine for the ZPL label
// description language: tokenizing the `^XX`/`~XX` command stream (C1) and
// lowering it into a flat sequence of absolute drawing instructions (C2).
package zpl

// Command is a discriminated value identifying a recognized opcode and its
// positional, comma-separated parameters. Parameters are kept as raw,
// trimmed strings; numeric/symbol interpretation and clamping happens in
// the state engine, where the meaning of each position is known.
//
// FieldData and Comment opcodes carry their payload unsplit in Data instead
// of Params, since ZPL field data is taken raw up to the next control
// character. Graphic Field (^GF) commands populate both: their four leading
// option fields land in Params like any other opcode, while the image
// payload that follows the fourth comma is kept raw in Data.
type Command struct {
	Op      string
	Tilde   bool
	Params  []string
	Data    string
	Unknown bool
	RawTail string
}

// knownOpcodes lists every opcode the lexer recognizes, longest first so
// that longest-match tokenization finds "GIC" before "GI" or "G".
var knownOpcodes = []string{
	"GIC", "GLC", "GTC",
	"XA", "XZ", "FO", "FT", "FS", "FR", "CF", "FD", "FB", "FX", "CI",
	"GB", "GC", "GE", "GF", "BY", "BC", "BQ", "B3", "BX", "B7", "CC", "CT", "LH", "LL",
	"A",
}

// rawDataOpcodes are the opcodes whose tail is taken verbatim (not split on
// commas) because it represents free-form text rather than a parameter list.
// ^GF is not listed here: it needs a hybrid split, handled separately in the
// lexer's splitGraphicFieldTail.
var rawDataOpcodes = map[string]bool{
	"FD": true,
	"FX": true,
}

// Param returns the i'th parameter, or "" if the command was not given that
// many parameters.
func (c Command) Param(i int) string {
	if i < 0 || i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}
