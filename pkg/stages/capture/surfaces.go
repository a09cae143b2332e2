package capture

import (
	"image"

	"github.com/user/gifcast/pkg/pipeline"
)

// surfacePair is a two-slot buffer pool for the capture loop. The current
// slot receives every primary capture, the recovery slot receives recovery
// re-captures. Both are reused across frames; accepted frames are deep-copied
// out before being appended to the session's frame list.
type surfacePair struct {
	current  *image.RGBA
	recovery *image.RGBA
}

func newSurfacePair(width, height int) (*surfacePair, error) {
	if width <= 0 || height <= 0 {
		return nil, pipeline.ErrSurfaceUnavailable
	}
	return &surfacePair{
		current:  image.NewRGBA(image.Rect(0, 0, width, height)),
		recovery: image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// promoteRecovery swaps the slots so the recovery buffer becomes the current
// frame. The old current buffer is kept as the next recovery scratch space.
func (p *surfacePair) promoteRecovery() {
	p.current, p.recovery = p.recovery, p.current
}

// copyPixels returns a deep copy of src. Stored frames must never alias the
// reusable surfaces.
func copyPixels(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
