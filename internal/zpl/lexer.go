package zpl

import "strings"

// Lexer tokenizes a ZPL byte stream into a sequence of Commands. The active
// control character (default '^') and tilde control character (default '~')
// are mutable lexer state: ^CC and ^CT reassign them mid-stream, so the
// lexer itself -- not a static grammar -- owns the delimiter pair.
type Lexer struct {
	data    []byte
	pos     int
	control byte
	tilde   byte
}

// NewLexer creates a Lexer over the given ZPL bytes with the default
// delimiters (`^` and `~`).
func NewLexer(data []byte) *Lexer {
	return &Lexer{data: data, control: '^', tilde: '~'}
}

// Parse tokenizes the full input and returns every recognized Command along
// with any trailing bytes that could not be associated with a command
// (normally empty). The parser never fails: malformed or truncated input
// degrades to Command.Unknown entries.
func Parse(data []byte) ([]Command, []byte) {
	lx := NewLexer(data)
	var cmds []Command
	for {
		cmd, ok := lx.next()
		if !ok {
			break
		}
		cmds = append(cmds, cmd)
	}
	return cmds, lx.data[lx.pos:]
}

func (lx *Lexer) isControl(b byte) bool {
	return b == lx.control || b == lx.tilde
}

// next scans forward to the next control character and parses one command.
// It returns ok=false once no more control characters remain.
func (lx *Lexer) next() (Command, bool) {
	for lx.pos < len(lx.data) && !lx.isControl(lx.data[lx.pos]) {
		lx.pos++
	}
	if lx.pos >= len(lx.data) {
		return Command{}, false
	}

	isTilde := lx.data[lx.pos] == lx.tilde
	start := lx.pos
	lx.pos++ // consume control byte

	op, opLen := lx.matchOpcode()
	lx.pos += opLen

	if op == "" {
		// Unknown: longest-match failed entirely (opcode byte run too
		// short); preserve whatever raw tail exists.
		tailStart := lx.pos
		for lx.pos < len(lx.data) && !lx.isControl(lx.data[lx.pos]) {
			lx.pos++
		}
		return Command{Unknown: true, Tilde: isTilde, RawTail: strings.TrimSpace(string(lx.data[start+1 : tailStart]) + string(lx.data[tailStart:lx.pos]))}, true
	}

	// ^CC/^CT take exactly the single character that immediately follows
	// as their new delimiter, never scanning ahead to the next control
	// byte -- otherwise the commands written with the new delimiter would
	// be swallowed as part of this one's tail.
	if (op == "CC" || op == "CT") && !isTilde {
		if lx.pos >= len(lx.data) {
			return Command{Op: op, Tilde: isTilde}, true
		}
		c := lx.data[lx.pos]
		lx.pos++
		if op == "CC" {
			lx.control = c
		} else {
			lx.tilde = c
		}
		return Command{Op: op, Tilde: isTilde, Params: []string{string(c)}}, true
	}

	tailStart := lx.pos
	for lx.pos < len(lx.data) && !lx.isControl(lx.data[lx.pos]) {
		lx.pos++
	}
	tail := string(lx.data[tailStart:lx.pos])

	known := false
	for _, k := range knownOpcodes {
		if k == op {
			known = true
			break
		}
	}
	if !known {
		return Command{Unknown: true, Tilde: isTilde, Op: op, RawTail: strings.TrimSpace(tail)}, true
	}

	if rawDataOpcodes[op] {
		return Command{Op: op, Tilde: isTilde, Data: strings.TrimSpace(tail)}, true
	}

	if op == "GF" {
		params, data := splitGraphicFieldTail(tail)
		return Command{Op: op, Tilde: isTilde, Params: params, Data: data}, true
	}

	params := splitParams(tail)
	return Command{Op: op, Tilde: isTilde, Params: params}, true
}

// splitGraphicFieldTail splits ^GF's tail into its four leading
// comma-separated option fields (compression type, binary byte count,
// graphic field count, bytes per row) and keeps everything after the
// fourth comma as the raw image payload. The payload itself uses `,`/`!`
// as row-padding tokens, so it cannot be run through splitParams like an
// ordinary parameter list without tearing it apart.
func splitGraphicFieldTail(tail string) ([]string, string) {
	params := make([]string, 0, 4)
	rest := tail
	for i := 0; i < 4; i++ {
		idx := strings.IndexByte(rest, ',')
		if idx < 0 {
			params = append(params, strings.TrimSpace(rest))
			rest = ""
			break
		}
		params = append(params, strings.TrimSpace(rest[:idx]))
		rest = rest[idx+1:]
	}
	return params, rest
}

// matchOpcode performs longest-match (3, then 2, then 1 bytes) against the
// known opcode table starting at lx.pos. It returns the matched opcode and
// its byte length; if nothing matches it takes a literal 2-byte opcode (or
// whatever remains, if fewer than 2 bytes are left) and reports it as
// unmatched via an empty opcode only when there are zero bytes left.
func (lx *Lexer) matchOpcode() (string, int) {
	remaining := len(lx.data) - lx.pos
	for _, length := range []int{3, 2, 1} {
		if remaining < length {
			continue
		}
		candidate := string(lx.data[lx.pos : lx.pos+length])
		for _, k := range knownOpcodes {
			if k == candidate {
				return candidate, length
			}
		}
	}
	if remaining == 0 {
		return "", 0
	}
	n := 2
	if remaining < 2 {
		n = remaining
	}
	return string(lx.data[lx.pos : lx.pos+n]), n
}

func splitParams(tail string) []string {
	if tail == "" {
		return nil
	}
	parts := strings.Split(tail, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
