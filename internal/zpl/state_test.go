package zpl

import "testing"

func lower(t *testing.T, zpl string) []Instruction {
	t.Helper()
	cmds, _ := Parse([]byte(zpl))
	instrs, err := Lower(cmds)
	if err != nil {
		t.Fatalf("Lower(%q): %v", zpl, err)
	}
	return instrs
}

func TestLowerRejectsMissingXA(t *testing.T) {
	_, err := Lower([]Command{{Op: "FS"}})
	if _, ok := err.(FormatError); !ok {
		t.Fatalf("got %v (%T), want FormatError", err, err)
	}
}

func TestLowerRejectsUnmatchedXZ(t *testing.T) {
	cmds, _ := Parse([]byte("^XZ"))
	_, err := Lower(cmds)
	if _, ok := err.(FormatError); !ok {
		t.Fatalf("got %v (%T), want FormatError", err, err)
	}
}

func TestLowerImplicitlyClosesUnterminatedLabel(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^FDhi^FS")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1: %+v", len(instrs), instrs)
	}
}

func TestLowerSimpleTextField(t *testing.T) {
	instrs := lower(t, "^XA^FO50,60^ADN,36,20^FDHello^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	in := instrs[0]
	if in.Kind != KindText {
		t.Fatalf("got kind %v, want KindText", in.Kind)
	}
	if in.X != 50 || in.Y != 60 {
		t.Errorf("got origin (%d,%d), want (50,60)", in.X, in.Y)
	}
	if in.Text != "Hello" {
		t.Errorf("got text %q, want Hello", in.Text)
	}
	if in.Font != 'D' {
		t.Errorf("got font %q, want D", in.Font)
	}
	if in.FontHeight != 36 || in.FontWidth != 20 {
		t.Errorf("got font size %dx%d, want 36x20", in.FontHeight, in.FontWidth)
	}
}

func TestLowerFieldWithoutDataEmitsNothing(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^ADN,20,20^FS^XZ")
	if len(instrs) != 0 {
		t.Fatalf("got %d instructions, want 0: %+v", len(instrs), instrs)
	}
}

func TestLowerCFSetsDefaultFontPersistingAcrossFields(t *testing.T) {
	instrs := lower(t, "^XA^CFZ,30,30^FO10,10^FDone^FS^FO10,50^FDtwo^FS^XZ")
	if len(instrs) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instrs))
	}
	for i, in := range instrs {
		if in.Font != 'Z' {
			t.Errorf("instruction %d: got font %q, want Z (from ^CF)", i, in.Font)
		}
	}
}

func TestLowerACommandOverridesOnlyNextField(t *testing.T) {
	instrs := lower(t, "^XA^CFZ,30,30^FO10,10^ADN,10,10^FDone^FS^FO10,50^FDtwo^FS^XZ")
	if len(instrs) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instrs))
	}
	if instrs[0].Font != 'D' {
		t.Errorf("first field: got font %q, want D (^A override)", instrs[0].Font)
	}
	if instrs[1].Font != 'Z' {
		t.Errorf("second field: got font %q, want Z (fell back to ^CF)", instrs[1].Font)
	}
}

func TestLowerReverseIsSetNotToggled(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^FR^FR^FDx^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if !instrs[0].Reverse {
		t.Errorf("expected reverse to be set true after two ^FR commands")
	}
}

func TestLowerBoxDefaults(t *testing.T) {
	instrs := lower(t, "^XA^FO0,0^GB100,50^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	in := instrs[0]
	if in.Kind != KindBox {
		t.Fatalf("got kind %v, want KindBox", in.Kind)
	}
	if in.W != 100 || in.H != 50 {
		t.Errorf("got dims %dx%d, want 100x50", in.W, in.H)
	}
	if in.Thickness != 1 {
		t.Errorf("got thickness %d, want 1 (default)", in.Thickness)
	}
	if in.Color != ColorBlack {
		t.Errorf("got color %+v, want black", in.Color)
	}
}

func TestLowerBarcodeWaitsForFieldData(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^BY2^BC N,100^FD12345^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	in := instrs[0]
	if in.Kind != KindCode128 {
		t.Fatalf("got kind %v, want KindCode128", in.Kind)
	}
	if in.Data != "12345" {
		t.Errorf("got data %q, want 12345", in.Data)
	}
	if in.H != 100 {
		t.Errorf("got height %d, want 100", in.H)
	}
}

func TestLowerBarcodeWithoutFieldDataEmitsNothing(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^BC N,100^FS^XZ")
	if len(instrs) != 0 {
		t.Fatalf("got %d instructions, want 0: %+v", len(instrs), instrs)
	}
}

func TestLowerPendingStateResetsOnEveryEmit(t *testing.T) {
	// The reverse flag and block params set for the first field must not
	// leak into the second, unrelated field.
	instrs := lower(t, "^XA^FO10,10^FR^FB200,2,0,C^FDone^FS^FO10,50^FDtwo^FS^XZ")
	if len(instrs) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instrs))
	}
	if !instrs[0].Reverse || !instrs[0].HasBlock {
		t.Errorf("first field should carry reverse+block state")
	}
	if instrs[1].Reverse {
		t.Errorf("second field should not inherit reverse from the first")
	}
	if instrs[1].HasBlock {
		t.Errorf("second field should not inherit block params from the first")
	}
}

func TestLowerLabelHomeOffsetsOrigin(t *testing.T) {
	instrs := lower(t, "^XA^LH20,30^FO10,10^FDx^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if instrs[0].X != 30 || instrs[0].Y != 40 {
		t.Errorf("got origin (%d,%d), want (30,40) after ^LH offset", instrs[0].X, instrs[0].Y)
	}
}

func TestLowerOmittedOriginFallsBackToCursor(t *testing.T) {
	instrs := lower(t, "^XA^FO0,0^GB100,20^FS^FDnext^FS^XZ")
	if len(instrs) != 2 {
		t.Fatalf("got %d instructions, want 2: %+v", len(instrs), instrs)
	}
	if instrs[1].Y != 20 {
		t.Errorf("got second field's Y %d, want 20 (below the box)", instrs[1].Y)
	}
}

func TestLowerCustomLineColor(t *testing.T) {
	instrs := lower(t, "^XA^FO0,0^GLC#FF0000^GB10,10^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	want := RGB{0xFF, 0x00, 0x00}
	if instrs[0].Color != want {
		t.Errorf("got color %+v, want %+v", instrs[0].Color, want)
	}
	if !instrs[0].HasCustom {
		t.Errorf("expected HasCustom to be true")
	}
}

func TestLowerIgnoresEverythingAfterTheFirstLabelCloses(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^GC50,2,B^FS^XZ^XA^FO20,20^GC10,2,B^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1 (only the first label renders): %+v", len(instrs), instrs)
	}
	if instrs[0].W != 50 {
		t.Errorf("got circle diameter %d, want 50 (the first label's circle)", instrs[0].W)
	}
}

func TestLowerDecodesGraphicFieldPayload(t *testing.T) {
	instrs := lower(t, "^XA^FO10,10^GFA,8,8,1,00FF00FF00FF00FF^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1: %+v", len(instrs), instrs)
	}
	in := instrs[0]
	if in.Kind != KindBitmap {
		t.Fatalf("got kind %v, want KindBitmap", in.Kind)
	}
	if in.Image == nil {
		t.Fatalf("expected a decoded bitmap, got nil")
	}
	want := []byte{0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF}
	if len(in.Image.Data) != len(want) {
		t.Fatalf("got %d decoded bytes, want %d: %x", len(in.Image.Data), len(want), in.Image.Data)
	}
	for i := range want {
		if in.Image.Data[i] != want[i] {
			t.Fatalf("decoded bytes %x, want %x (the raw RLE payload must reach the decoder intact)", in.Image.Data, want)
		}
	}
}

func TestLowerInvalidHexColorIsIgnored(t *testing.T) {
	instrs := lower(t, "^XA^FO0,0^GLCnotahex^GB10,10^FS^XZ")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	if instrs[0].Color != ColorBlack {
		t.Errorf("got color %+v, want default black", instrs[0].Color)
	}
	if instrs[0].HasCustom {
		t.Errorf("expected HasCustom to remain false for an invalid hex value")
	}
}
