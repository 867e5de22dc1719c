package label

import (
	"bytes"
	"testing"

	"zplforge/internal/backend"
)

func TestNewComputesDotCanvasSize(t *testing.T) {
	e, err := New([]byte("^XA^XZ"), 4, 2, UnitInches, Res203DPI)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.width != 812 || e.height != 406 {
		t.Errorf("got %dx%d, want 812x406", e.width, e.height)
	}
}

func TestNewRejectsOversizedCanvas(t *testing.T) {
	_, err := New([]byte("^XA^XZ"), 50, 50, UnitInches, Res600DPI)
	if _, ok := err.(CanvasTooLarge); !ok {
		t.Fatalf("expected CanvasTooLarge, got %v", err)
	}
}

func TestNewRejectsInvalidResolution(t *testing.T) {
	_, err := New([]byte("^XA^XZ"), 4, 2, UnitInches, Resolution(99))
	if err != ErrNoValidResolution {
		t.Fatalf("expected ErrNoValidResolution, got %v", err)
	}
}

func TestInstructionsLowersLabel(t *testing.T) {
	e, err := New([]byte("^XA^FO50,50^A0N,50,50^FDZPL Forge^FS^XZ"), 4, 2, UnitInches, Res203DPI)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	instrs, err := e.Instructions()
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if instrs[0].Text != "ZPL Forge" {
		t.Errorf("got text %q", instrs[0].Text)
	}
}

func TestRenderProducesPNGBytes(t *testing.T) {
	e, err := New([]byte("^XA^FO10,10^A0N,20,20^FDHi^FS^XZ"), 2, 1, UnitInches, Res203DPI)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := e.Render(&buf, backend.FormatPNG, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	sig := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(buf.Bytes(), sig) {
		t.Errorf("expected a PNG signature")
	}
}

func TestMillimeterConversion(t *testing.T) {
	e, err := New([]byte("^XA^XZ"), 101.6, 50.8, UnitMillimeters, Res203DPI)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.width != 812 || e.height != 406 {
		t.Errorf("got %dx%d, want 812x406", e.width, e.height)
	}
}
