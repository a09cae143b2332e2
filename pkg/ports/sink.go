package ports

import (
	"image"
)

// DebugSink collects intermediate pipeline results for diagnostics.
// It replaces ambient global frame dumps: the sink is injected through the
// session configuration and may be a no-op.
type DebugSink interface {
	// Enabled returns true if diagnostic output is collected.
	Enabled() bool

	// SaveScheduleJSON saves the computed frame schedule as JSON.
	SaveScheduleJSON(data []byte) error

	// SaveCapturedFrame saves a frame as captured from the source.
	SaveCapturedFrame(index int, img image.Image) error

	// SaveComposedFrame saves a frame after overlay compositing.
	SaveComposedFrame(index int, img image.Image) error

	// SaveResultJSON saves the session result metadata as JSON.
	SaveResultJSON(data []byte) error
}
