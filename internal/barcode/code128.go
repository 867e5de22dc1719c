package barcode

import "strconv"

// code128Widths is the standard AIM Code 128 symbol table: each entry is six
// run-lengths (bar,space,bar,space,bar,space) in modules, indexed by symbol
// value 0-102, plus 103/104/105 for Start A/B/C and 106 for the seven-run
// Stop pattern.
var code128Widths = [][]int{
	{2, 1, 2, 2, 2, 2}, {2, 2, 2, 1, 2, 2}, {2, 2, 2, 2, 2, 1}, {1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2}, {1, 3, 1, 2, 2, 2}, {1, 2, 2, 2, 1, 3}, {1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2}, {2, 2, 1, 2, 1, 3}, {2, 2, 1, 3, 1, 2}, {2, 3, 1, 2, 1, 2},
	{1, 1, 2, 2, 3, 2}, {1, 2, 2, 1, 3, 2}, {1, 2, 2, 2, 3, 1}, {1, 1, 3, 2, 2, 2},
	{1, 2, 3, 1, 2, 2}, {1, 2, 3, 2, 2, 1}, {2, 2, 3, 2, 1, 1}, {2, 2, 1, 1, 3, 2},
	{2, 2, 1, 2, 3, 1}, {2, 1, 3, 2, 1, 2}, {2, 2, 3, 1, 1, 2}, {3, 1, 2, 1, 3, 1},
	{3, 1, 1, 2, 2, 2}, {3, 2, 1, 1, 2, 2}, {3, 2, 1, 2, 2, 1}, {3, 1, 2, 2, 1, 2},
	{3, 2, 2, 1, 1, 2}, {3, 2, 2, 2, 1, 1}, {2, 1, 2, 1, 2, 3}, {2, 1, 2, 3, 2, 1},
	{2, 3, 2, 1, 2, 1}, {1, 1, 1, 3, 2, 3}, {1, 3, 1, 1, 2, 3}, {1, 3, 1, 3, 2, 1},
	{1, 1, 2, 3, 1, 3}, {1, 3, 2, 1, 1, 3}, {1, 3, 2, 3, 1, 1}, {2, 1, 1, 3, 1, 3},
	{2, 3, 1, 1, 1, 3}, {2, 3, 1, 3, 1, 1}, {1, 1, 2, 1, 3, 3}, {1, 1, 2, 3, 3, 1},
	{1, 3, 2, 1, 3, 1}, {1, 1, 3, 1, 2, 3}, {1, 1, 3, 3, 2, 1}, {1, 3, 3, 1, 2, 1},
	{3, 1, 3, 1, 2, 1}, {2, 1, 1, 3, 3, 1}, {2, 3, 1, 1, 3, 1}, {2, 1, 3, 1, 1, 3},
	{2, 1, 3, 3, 1, 1}, {2, 1, 3, 1, 3, 1}, {3, 1, 1, 1, 2, 3}, {3, 1, 1, 3, 2, 1},
	{3, 3, 1, 1, 2, 1}, {3, 1, 2, 1, 1, 3}, {3, 1, 2, 3, 1, 1}, {3, 3, 2, 1, 1, 1},
	{3, 1, 4, 1, 1, 1}, {2, 2, 1, 4, 1, 1}, {4, 3, 1, 1, 1, 1}, {1, 1, 1, 2, 2, 4},
	{1, 1, 1, 4, 2, 2}, {1, 2, 1, 1, 2, 4}, {1, 2, 1, 4, 2, 1}, {1, 4, 1, 1, 2, 2},
	{1, 4, 1, 2, 2, 1}, {1, 1, 2, 2, 1, 4}, {1, 1, 2, 4, 1, 2}, {1, 2, 2, 1, 1, 4},
	{1, 2, 2, 4, 1, 1}, {1, 4, 2, 1, 1, 2}, {1, 4, 2, 2, 1, 1}, {2, 4, 1, 2, 1, 1},
	{2, 2, 1, 1, 1, 4}, {4, 1, 3, 1, 1, 1}, {2, 4, 1, 1, 1, 2}, {1, 3, 4, 1, 1, 1},
	{1, 1, 1, 2, 4, 2}, {1, 2, 1, 1, 4, 2}, {1, 2, 1, 2, 4, 1}, {1, 1, 4, 2, 1, 2},
	{1, 2, 4, 1, 1, 2}, {1, 2, 4, 2, 1, 1}, {4, 1, 1, 2, 1, 2}, {4, 2, 1, 1, 1, 2},
	{4, 2, 1, 2, 1, 1}, {2, 1, 2, 1, 4, 1}, {2, 1, 4, 1, 2, 1}, {4, 1, 2, 1, 2, 1},
	{1, 1, 1, 1, 4, 3}, {1, 1, 1, 3, 4, 1}, {1, 3, 1, 1, 4, 1}, {1, 1, 4, 1, 1, 3},
	{1, 1, 4, 3, 1, 1}, {4, 1, 1, 1, 1, 3}, {4, 1, 1, 3, 1, 1}, {1, 1, 3, 1, 4, 1},
	{1, 1, 4, 1, 3, 1}, {3, 1, 1, 1, 4, 1}, {4, 1, 1, 1, 3, 1},
	{2, 1, 1, 4, 1, 2}, {2, 1, 1, 2, 1, 4}, {2, 1, 1, 2, 3, 2},
	{2, 3, 3, 1, 1, 1, 2},
}

const (
	code128FNC3   = 96
	code128FNC2   = 97
	code128Shift  = 98
	code128CodeC  = 99
	code128CodeB  = 100
	code128CodeA  = 101
	code128FNC1   = 102
	code128StartA = 103
	code128StartB = 104
	code128StartC = 105
	code128Stop   = 106
)

// EncodeCode128 renders data as Subset B (every printable ASCII character
// maps 1:1), switching into Subset C automatically whenever a run of four
// or more consecutive digits appears, matching how Zebra printers minimize
// symbol length for numeric payloads. A modulo-103 checksum is always
// appended, per the symbology's own spec (ZPL's check_digit flag only
// controls whether the checksum is additionally printed in the
// interpretation line).
func EncodeCode128(data string) Pattern {
	values := encodeCode128Values(data)

	runs := make([]int, 0, len(values)*6)
	for _, v := range values {
		runs = append(runs, code128Widths[v]...)
	}
	return newPattern(runs)
}

func encodeCode128Values(data string) []int {
	values := []int{code128StartB}
	checksum := code128StartB
	inSubsetC := false

	i := 0
	for i < len(data) {
		if !inSubsetC {
			if digitRunLength(data, i) >= 4 {
				values = append(values, code128CodeC)
				checksum += code128CodeC * (len(values) - 1)
				inSubsetC = true
				continue
			}
			v := int(data[i]) - 32
			if v < 0 || v > 94 {
				v = 0 // unsupported byte: encode as space rather than fail
			}
			values = append(values, v)
			checksum += v * (len(values) - 1)
			i++
			continue
		}

		// In Subset C: consume digits two at a time. Once fewer than two
		// digits remain, switch back to Subset B before continuing --
		// otherwise a following non-digit byte (or a leftover odd digit)
		// would be misread as a Subset-C digit pair by the scanner.
		if digitRunLength(data, i) >= 2 {
			pair, _ := strconv.Atoi(data[i : i+2])
			values = append(values, pair)
			checksum += pair * (len(values) - 1)
			i += 2
			continue
		}
		values = append(values, code128CodeB)
		checksum += code128CodeB * (len(values) - 1)
		inSubsetC = false
	}

	values = append(values, checksum%103, code128Stop)
	return values
}

func digitRunLength(s string, start int) int {
	n := 0
	for start+n < len(s) && s[start+n] >= '0' && s[start+n] <= '9' {
		n++
	}
	return n
}
