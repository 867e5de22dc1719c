// Package barcode renders linear and matrix barcode symbologies into flat
// module grids the painter can blit without knowing anything about the
// underlying encoding. Code 39 and Code 128 are hand-rolled against the
// published AIM symbology tables because the off-the-shelf generator in the
// surrounding ecosystem (boombuler/barcode) bakes in its own module-width
// and wide/narrow ratio, and ^BY's caller-tunable ratio can't be threaded
// through it. QR codes are delegated to skip2/go-qrcode, which already
// exposes exactly the knobs ^BQ needs.
package barcode

// Pattern is a 1D barcode rendered as alternating bar/space run lengths, in
// narrow-module units. Runs[0] is always a bar.
type Pattern struct {
	Runs []int
	// Width is the total module count (sum of Runs), convenient for callers
	// that need to lay out quiet zones or compute the day's bounding box.
	Width int
}

func newPattern(runs []int) Pattern {
	w := 0
	for _, r := range runs {
		w += r
	}
	return Pattern{Runs: runs, Width: w}
}

// Bars expands a Pattern into one bool per module (true = bar/black).
func (p Pattern) Bars() []bool {
	bars := make([]bool, 0, p.Width)
	isBar := true
	for _, run := range p.Runs {
		for i := 0; i < run; i++ {
			bars = append(bars, isBar)
		}
		isBar = !isBar
	}
	return bars
}
