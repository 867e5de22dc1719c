package barcode

import qrcode "github.com/skip2/go-qrcode"

// Matrix is a square grid of modules for 2D symbologies.
type Matrix struct {
	Size int
	bits []bool
}

func (m Matrix) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return false
	}
	return m.bits[y*m.Size+x]
}

// qrRecoveryLevel maps ^BQ's single-letter error-correction code onto the
// library's enum, defaulting to Medium like the printer firmware does.
func qrRecoveryLevel(errorCorr byte) qrcode.RecoveryLevel {
	switch errorCorr {
	case 'L':
		return qrcode.Low
	case 'Q':
		return qrcode.High // library has no Quartile; High is the closer fit
	case 'H':
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// EncodeQR renders data into a module Matrix at the symbol's natural size
// (go-qrcode picks the smallest version that fits data at the requested
// error-correction level); ^BQ's magnification is applied by the painter as
// an integer module scale-up, not here, so every module stays crisp.
func EncodeQR(data string, errorCorr byte) (Matrix, error) {
	qr, err := qrcode.New(data, qrRecoveryLevel(errorCorr))
	if err != nil {
		return Matrix{}, err
	}
	bm := qr.Bitmap()
	size := len(bm)
	bits := make([]bool, 0, size*size)
	for _, row := range bm {
		bits = append(bits, row...)
	}
	return Matrix{Size: size, bits: bits}, nil
}
