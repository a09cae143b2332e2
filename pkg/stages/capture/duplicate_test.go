package capture

import (
	"image"
	"image/color"
	"testing"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestDetector_IdenticalFrames(t *testing.T) {
	d := NewDetector()
	a := solidFrame(64, 48, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	b := solidFrame(64, 48, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	if sim := d.Similarity(a, b); sim != 1.0 {
		t.Errorf("identical frames: expected similarity 1.0, got %v", sim)
	}
	if !d.IsDuplicate(a, b) {
		t.Error("identical frames must be duplicates")
	}
}

func TestDetector_FullyDistinctFrames(t *testing.T) {
	d := NewDetector()
	a := solidFrame(64, 48, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	b := solidFrame(64, 48, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	if sim := d.Similarity(a, b); sim != 0.0 {
		t.Errorf("distinct frames: expected similarity 0.0, got %v", sim)
	}
	if d.IsDuplicate(a, b) {
		t.Error("distinct frames must not be duplicates")
	}
}

func TestDetector_AlphaIgnored(t *testing.T) {
	d := NewDetector()
	a := solidFrame(32, 32, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	b := solidFrame(32, 32, color.RGBA{R: 10, G: 20, B: 30, A: 0})

	if !d.IsDuplicate(a, b) {
		t.Error("frames differing only in alpha must be duplicates")
	}
}

func TestDetector_NearThreshold(t *testing.T) {
	// 64x48 = 3072 pixels, stride 3 -> 1024 samples. Change a contiguous
	// block large enough that >2% of samples differ.
	d := NewDetector()
	a := solidFrame(64, 48, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	b := solidFrame(64, 48, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	// Change the top 4 rows (256 pixels, ~85 samples of 1024 -> ~8% differ).
	for y := 0; y < 4; y++ {
		for x := 0; x < 64; x++ {
			b.SetRGBA(x, y, color.RGBA{R: 0, G: 0, B: 0, A: 255})
		}
	}

	if d.IsDuplicate(a, b) {
		t.Errorf("frames with ~8%% changed samples must not be duplicates (similarity %v)", d.Similarity(a, b))
	}
}

func TestDetector_MismatchedDimensions(t *testing.T) {
	d := NewDetector()
	a := solidFrame(64, 48, color.RGBA{A: 255})
	b := solidFrame(32, 48, color.RGBA{A: 255})

	if sim := d.Similarity(a, b); sim != 0 {
		t.Errorf("mismatched dimensions: expected similarity 0, got %v", sim)
	}
}

func TestDuplicateBound(t *testing.T) {
	tests := []struct {
		frameRate float64
		expected  int
	}{
		{1, 5},
		{4.9, 5},
		{5, 5},
		{10, 10},
		{12.3, 13},
		{30, 30},
		{60, 30},
	}

	for _, tt := range tests {
		if got := DuplicateBound(tt.frameRate); got != tt.expected {
			t.Errorf("DuplicateBound(%v): expected %d, got %d", tt.frameRate, tt.expected, got)
		}
	}
}
