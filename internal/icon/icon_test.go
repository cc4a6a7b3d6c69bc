package icon

import (
	"bytes"
	"image/png"
	"testing"
)

func TestDrawBounds(t *testing.T) {
	img := Draw(64)
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("bounds = %v, want 64x64", b)
	}
}

func TestDrawCornersTransparent(t *testing.T) {
	img := Draw(64)
	_, _, _, a := img.At(0, 0).RGBA()
	if a != 0 {
		t.Error("corner pixel should be transparent outside the round badge")
	}
	_, _, _, a = img.At(32, 32).RGBA()
	if a == 0 {
		t.Error("center pixel should be opaque")
	}
}

func TestPNGDecodes(t *testing.T) {
	data, err := PNG(32)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 32 {
		t.Errorf("decoded width = %d, want 32", img.Bounds().Dx())
	}
}
