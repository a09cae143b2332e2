package ports

import (
	"image"
)

// GifEncoder abstracts an animated-GIF encoding engine.
type GifEncoder interface {
	// Begin initializes the engine with the output dimensions and options.
	Begin(width, height int, opts GifOptions) error

	// AddFrame appends a frame with the given display delay in milliseconds.
	AddFrame(img *image.RGBA, delayMs int) error

	// End finalizes encoding and returns the GIF data.
	End() ([]byte, error)

	// Name identifies the engine for result metadata.
	Name() string
}

// GifOptions configures GIF encoding parameters.
type GifOptions struct {
	Quality int // 1-100 (higher is better palette fidelity)
	Loop    int // Loop count (0 = loop forever)
}
