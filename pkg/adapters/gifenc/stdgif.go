// Package gifenc provides animated-GIF encoding engines behind the
// ports.GifEncoder interface.
package gifenc

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"

	"github.com/user/gifcast/pkg/ports"
)

// StdEncoder implements ports.GifEncoder with the standard library's GIF
// writer and the fixed Plan 9 palette. It trades palette fidelity for speed
// and zero per-frame analysis.
type StdEncoder struct {
	width  int
	height int
	loop   int
	frames []*image.Paletted
	delays []int
}

// NewStd creates a standard-palette GIF encoder.
func NewStd() *StdEncoder {
	return &StdEncoder{}
}

// Begin initializes the encoder with the output dimensions and options.
func (e *StdEncoder) Begin(width, height int, opts ports.GifOptions) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	e.width = width
	e.height = height
	e.loop = opts.Loop
	e.frames = nil
	e.delays = nil
	return nil
}

// AddFrame dithers the frame onto the fixed palette and appends it.
func (e *StdEncoder) AddFrame(img *image.RGBA, delayMs int) error {
	if e.width == 0 {
		return ErrNotInitialized
	}

	bounds := image.Rect(0, 0, e.width, e.height)
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, bounds, img, img.Bounds().Min)

	e.frames = append(e.frames, paletted)
	e.delays = append(e.delays, delayMs/10) // GIF delays are in centiseconds
	return nil
}

// End finalizes encoding and returns the GIF data.
func (e *StdEncoder) End() ([]byte, error) {
	if e.width == 0 {
		return nil, ErrNotInitialized
	}
	if len(e.frames) == 0 {
		return nil, ErrNoFrames
	}

	anim := &gif.GIF{
		Image:     e.frames,
		Delay:     e.delays,
		LoopCount: e.loop,
		Config: image.Config{
			ColorModel: e.frames[0].ColorModel(),
			Width:      e.width,
			Height:     e.height,
		},
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, fmt.Errorf("encode GIF: %w", err)
	}
	return buf.Bytes(), nil
}

// Name identifies the engine for result metadata.
func (e *StdEncoder) Name() string {
	return "std-gif"
}

// Ensure StdEncoder implements ports.GifEncoder
var _ ports.GifEncoder = (*StdEncoder)(nil)
