package barcode

import "strings"

// code39Patterns maps each supported character to its bar/space widths, read
// bar-space-bar-space-bar-space-bar-space-bar. Every symbol carries exactly
// three wide elements out of nine, the defining invariant of the symbology.
var code39Patterns = map[byte]string{
	'0': "NNNWWNWNN", '1': "WNNWNNNNW", '2': "NNWWNNNNW", '3': "WNWWNNNNN",
	'4': "NNNWWNNNW", '5': "WNNWWNNNN", '6': "NNWWWNNNN", '7': "NNNWNNWNW",
	'8': "WNNWNNWNN", '9': "NNWWNNWNN",
	'A': "WNNNNWNNW", 'B': "NNWNNWNNW", 'C': "WNWNNWNNN", 'D': "NNNNWWNNW",
	'E': "WNNNWWNNN", 'F': "NNWNWWNNN", 'G': "NNNNNWWNW", 'H': "WNNNNWWNN",
	'I': "NNWNNWWNN", 'J': "NNNNWWWNN", 'K': "WNNNNNNWW", 'L': "NNWNNNNWW",
	'M': "WNWNNNNWN", 'N': "NNNNWNNWW", 'O': "WNNNWNNWN", 'P': "NNWNWNNWN",
	'Q': "NNNNNNWWW", 'R': "WNNNNNWWN", 'S': "NNWNNNWWN", 'T': "NNNNWNWWN",
	'U': "WWNNNNNNW", 'V': "NWWNNNNNW", 'W': "WWWNNNNNN", 'X': "NWNNWNNNW",
	'Y': "WWNNWNNNN", 'Z': "NWWNWNNNN",
	'-': "NWNNNNWNW", '.': "WWNNNNWNN", ' ': "NWWNNNWNN",
	'$': "NWNWNWNNN", '/': "NWNWNNNWN", '+': "NWNNNWNWN", '%': "NNNWNWNWN",
	'*': "NWNNWNWNN",
}

// code39Order fixes the modulo-43 checksum value for every Code 39
// character, in the order Zebra's check-digit algorithm assigns them.
const code39Order = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

func code39Value(c byte) int {
	for i := 0; i < len(code39Order); i++ {
		if code39Order[i] == c {
			return i
		}
	}
	return -1
}

// EncodeCode39 renders data (upper-cased automatically, since Code 39 has no
// lowercase) into a Pattern including leading/trailing start/stop '*'
// characters and an inter-character narrow gap. When checkDigit is true a
// modulo-43 check character is computed and encoded before the stop symbol.
// ratio sets the wide-to-narrow module width ratio, clamped by the caller to
// ^BY's [2.0, 3.0] range.
func EncodeCode39(data string, checkDigit bool, ratio float64) Pattern {
	data = strings.ToUpper(data)
	wide := int(ratio + 0.5)
	if wide < 2 {
		wide = 2
	}

	symbols := make([]byte, 0, len(data)+3)
	symbols = append(symbols, '*')
	for i := 0; i < len(data); i++ {
		c := data[i]
		if _, ok := code39Patterns[c]; ok {
			symbols = append(symbols, c)
		}
	}

	if checkDigit {
		sum := 0
		for _, c := range symbols[1:] {
			if v := code39Value(c); v >= 0 {
				sum += v
			}
		}
		symbols = append(symbols, code39Order[sum%43])
	}
	symbols = append(symbols, '*')

	var runs []int
	for i, c := range symbols {
		pattern := code39Patterns[c]
		for _, e := range pattern {
			if e == 'N' {
				runs = append(runs, 1)
			} else {
				runs = append(runs, wide)
			}
		}
		if i != len(symbols)-1 {
			runs = append(runs, 1) // inter-character gap, always narrow
		}
	}

	return newPattern(runs)
}
