package rle

import (
	"strings"
	"testing"
)

func TestDecodeSimpleHexPairs(t *testing.T) {
	// Two full rows of one byte each: 0xFF then 0x00.
	bmp, err := Decode("FF00", 1, 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if bmp.Width != 8 || bmp.Height != 2 {
		t.Fatalf("got %dx%d, want 8x2", bmp.Width, bmp.Height)
	}
	if !bmp.At(0, 0) {
		t.Errorf("expected (0,0) set in first row")
	}
	if bmp.At(0, 1) {
		t.Errorf("expected (0,1) clear in second row")
	}
}

func TestDecodeRepeatCountAdditive(t *testing.T) {
	// "GH" should chain additively: G=1, H=2, so the following hex pair
	// repeats 3 times, not 1*2.
	bmp, err := Decode("GHFF", 1, 3)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for y := uint32(0); y < 3; y++ {
		if !bmp.At(0, y) {
			t.Errorf("row %d: expected all bits set", y)
		}
	}
}

func TestDecodeCommaPadsRowWithZeros(t *testing.T) {
	bmp, err := Decode("F,FF", 2, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// Row 0: nibble F then comma-pad -> 0xF0, 0x00.
	if !bmp.At(0, 0) || bmp.At(4, 0) {
		t.Errorf("row 0 not padded as expected")
	}
}

func TestDecodeBangPadsRowWithOnes(t *testing.T) {
	bmp, err := Decode("F!FF", 2, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bmp.At(4, 0) {
		t.Errorf("expected bang-padding to set trailing bits")
	}
}

func TestDecodeColonDuplicatesPreviousRow(t *testing.T) {
	bmp, err := Decode("FF:", 1, 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bmp.At(0, 0) || !bmp.At(0, 1) {
		t.Errorf("expected duplicated row to match the first row")
	}
}

func TestDecodeRejectsOversizedPayload(t *testing.T) {
	_, err := Decode("FF", 1, MaxDecodedBytes+1)
	if err == nil {
		t.Fatal("expected ErrImageTooLarge")
	}
	if _, ok := err.(ErrImageTooLarge); !ok {
		t.Fatalf("got error %T, want ErrImageTooLarge", err)
	}
}

func TestDecodeRejectsOversizedPayloadFromChainedMultipliers(t *testing.T) {
	// A chain of "z" tokens (multiplier +400 each) that pushes the
	// accumulated repeat count past MaxDecodedBytes must still be rejected
	// as ErrImageTooLarge, not silently wrap around to a small residue.
	encoded := strings.Repeat("z", MaxDecodedBytes/400+10) + "FF"

	_, err := Decode(encoded, 1, MaxDecodedBytes)
	if err == nil {
		t.Fatal("expected ErrImageTooLarge from an oversized multiplier chain")
	}
	if _, ok := err.(ErrImageTooLarge); !ok {
		t.Fatalf("got error %T, want ErrImageTooLarge", err)
	}
}

func TestSaturatingAddU32ClampsInsteadOfWrapping(t *testing.T) {
	if got := saturatingAddU32(MaxDecodedBytes, MaxDecodedBytes); got != MaxDecodedBytes {
		t.Errorf("got %d, want clamp at %d", got, uint32(MaxDecodedBytes))
	}
	if got := saturatingAddU32(4294967295, 1); got != MaxDecodedBytes {
		t.Errorf("overflowing add got %d, want clamp at %d", got, uint32(MaxDecodedBytes))
	}
	if got := saturatingAddU32(1, 2); got != 3 {
		t.Errorf("ordinary add got %d, want 3", got)
	}
}

func TestDecodeTruncatesOrPadsToDeclaredSize(t *testing.T) {
	bmp, err := Decode("FFFFFF", 1, 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(bmp.Data) != 2 {
		t.Fatalf("got %d bytes, want 2 (truncated)", len(bmp.Data))
	}

	bmp, err = Decode("FF", 1, 4)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(bmp.Data) != 4 {
		t.Fatalf("got %d bytes, want 4 (zero-padded)", len(bmp.Data))
	}
}
