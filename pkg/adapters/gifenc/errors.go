package gifenc

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("gifenc: encoder not initialized")

	// ErrNoFrames is returned when finalizing with no frames added.
	ErrNoFrames = errors.New("gifenc: no frames to encode")

	// ErrInvalidDimensions is returned when Begin receives non-positive dimensions.
	ErrInvalidDimensions = errors.New("gifenc: invalid output dimensions")
)
