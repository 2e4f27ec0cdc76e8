package hal

import (
	"bytes"
	"image/color"
	"testing"
)

func TestDisplaySetPixelBlendsAndClips(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	fb.ClearRGB(0, 0, 0)
	d := NewDisplay(fb)

	d.SetPixel(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if got := fb.img.RGBAAt(1, 1); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("expected white pixel, got %v", got)
	}

	d.SetPixel(2, 1, color.RGBA{R: 255, A: 127})
	if got := fb.img.RGBAAt(2, 1); got.R != 127 || got.A != 255 {
		t.Fatalf("expected half red over black, got %v", got)
	}

	before := append([]byte(nil), fb.img.Pix...)
	d.SetPixel(-1, 0, color.RGBA{R: 9, A: 255})
	d.SetPixel(4, 0, color.RGBA{R: 9, A: 255})
	d.SetPixel(0, 3, color.RGBA{R: 9, A: 255})
	if !bytes.Equal(before, fb.img.Pix) {
		t.Fatal("expected out of bounds writes to be dropped")
	}
}

func TestDisplayRegionTranslatesCoordinates(t *testing.T) {
	fb := newHostFramebuffer(10, 10)
	fb.ClearRGB(0, 0, 0)
	r := NewDisplay(fb).Region(2, 3, 4, 4)

	w, h := r.Size()
	if w != 4 || h != 4 {
		t.Fatalf("expected 4x4 region, got %dx%d", w, h)
	}

	r.SetPixel(0, 0, color.RGBA{G: 255, A: 255})
	if got := fb.img.RGBAAt(2, 3); got.G != 255 {
		t.Fatalf("expected region origin at (2,3), got %v", got)
	}

	if err := r.FillRectangle(-5, -5, 100, 100, color.RGBA{B: 255, A: 255}); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	if got := fb.img.RGBAAt(1, 3); got.B != 0 {
		t.Fatalf("expected fill clipped to region, got %v at (1,3)", got)
	}
	if got := fb.img.RGBAAt(5, 6); got.B != 255 {
		t.Fatalf("expected fill inside region, got %v at (5,6)", got)
	}
	if got := fb.img.RGBAAt(6, 7); got.B != 0 {
		t.Fatalf("expected fill clipped at region end, got %v at (6,7)", got)
	}
}

func TestDisplayNilFramebuffer(t *testing.T) {
	d := NewDisplay(nil)
	d.SetPixel(0, 0, color.RGBA{A: 255})
	if err := d.FillRectangle(0, 0, 1, 1, color.RGBA{A: 255}); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	if err := d.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if w, h := d.Size(); w != 0 || h != 0 {
		t.Fatalf("expected zero size, got %dx%d", w, h)
	}
}
