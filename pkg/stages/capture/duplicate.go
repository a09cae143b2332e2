package capture

import (
	"image"
	"math"
)

// Detector decides whether two consecutive frames are visually identical,
// which indicates the source failed to advance (typically a buffering stall).
// The sample cap and threshold are empirical heuristics, exposed as tunable
// parameters rather than load-bearing constants.
type Detector struct {
	// MaxSamples caps the number of pixel positions compared per frame pair.
	MaxSamples int
	// Threshold is the similarity above which frames count as duplicates.
	Threshold float64
}

// NewDetector returns a Detector with the standard tuning.
func NewDetector() *Detector {
	return &Detector{
		MaxSamples: 1000,
		Threshold:  0.98,
	}
}

// Similarity samples pixel positions at a fixed stride across both buffers
// and returns the fraction of matching samples. Only RGB channels are
// compared; alpha is ignored. Buffers of differing dimensions score 0.
func (d *Detector) Similarity(a, b *image.RGBA) float64 {
	if a == nil || b == nil {
		return 0
	}
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return 0
	}

	width := a.Rect.Dx()
	height := a.Rect.Dy()
	pixels := width * height
	if pixels == 0 {
		return 0
	}

	stride := pixels / d.MaxSamples
	if stride < 1 {
		stride = 1
	}

	samples := 0
	matches := 0
	for i := 0; i < pixels; i += stride {
		x := i % width
		y := i / width
		ao := a.PixOffset(a.Rect.Min.X+x, a.Rect.Min.Y+y)
		bo := b.PixOffset(b.Rect.Min.X+x, b.Rect.Min.Y+y)
		samples++
		if a.Pix[ao] == b.Pix[bo] && a.Pix[ao+1] == b.Pix[bo+1] && a.Pix[ao+2] == b.Pix[bo+2] {
			matches++
		}
	}

	return float64(matches) / float64(samples)
}

// IsDuplicate reports whether the two buffers are considered identical.
func (d *Detector) IsDuplicate(a, b *image.RGBA) bool {
	return d.Similarity(a, b) > d.Threshold
}

// DuplicateBound returns the consecutive-duplicate count at which a session
// is aborted as stuck: max(5, min(30, ceil(frameRate))).
func DuplicateBound(frameRate float64) int {
	bound := int(math.Ceil(frameRate))
	if bound > 30 {
		bound = 30
	}
	if bound < 5 {
		bound = 5
	}
	return bound
}
