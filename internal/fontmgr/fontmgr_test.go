package fontmgr

import (
	"image"
	"image/color"
	"testing"
)

func TestNewBindsEveryIdentifierToFallback(t *testing.T) {
	m := New()
	for _, id := range []byte{'A', 'Z', '0', '9'} {
		if m.Resolve(id) == nil {
			t.Errorf("identifier %q: expected a resolved font", id)
		}
	}
}

func TestResolveUnknownIdentifierFallsBack(t *testing.T) {
	m := New()
	if m.Resolve('!') == nil {
		t.Errorf("unbound identifier should still resolve to the fallback")
	}
}

func TestDrawProducesNonZeroAdvance(t *testing.T) {
	m := New()
	dst := image.NewRGBA(image.Rect(0, 0, 200, 60))
	advance, err := m.Draw(dst, "Hello", 5, 5, 'A', 30, image.NewUniform(color.Black))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if advance <= 0 {
		t.Errorf("got advance %d, want > 0", advance)
	}
}

func TestMeasureStringScalesWithHeight(t *testing.T) {
	m := New()
	small := m.MeasureString("Label", 'A', 10)
	large := m.MeasureString("Label", 'A', 40)
	if large <= small {
		t.Errorf("got large=%d small=%d, expected larger height to measure wider", large, small)
	}
}
