package gifenc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/user/gifcast/pkg/ports"
)

// QuantEncoder implements ports.GifEncoder with a per-frame median-cut
// palette. Quality selects the palette size, so each frame gets colors fitted
// to its own content at the cost of per-frame quantization work.
type QuantEncoder struct {
	width  int
	height int
	loop   int
	colors int
	frames []*image.Paletted
	delays []int
}

// NewQuant creates a median-cut GIF encoder.
func NewQuant() *QuantEncoder {
	return &QuantEncoder{}
}

// paletteSize maps encoder quality 1-100 to a palette size of 16-256 colors.
func paletteSize(quality int) int {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	colors := quality * 256 / 100
	if colors < 16 {
		colors = 16
	}
	return colors
}

// Begin initializes the encoder with the output dimensions and options.
func (e *QuantEncoder) Begin(width, height int, opts ports.GifOptions) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	e.width = width
	e.height = height
	e.loop = opts.Loop
	e.colors = paletteSize(opts.Quality)
	e.frames = nil
	e.delays = nil
	return nil
}

// AddFrame quantizes the frame onto its own median-cut palette and appends it.
func (e *QuantEncoder) AddFrame(img *image.RGBA, delayMs int) error {
	if e.width == 0 {
		return ErrNotInitialized
	}

	quantizer := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	pal := quantizer.Quantize(make(color.Palette, 0, e.colors), img)
	if len(pal) == 0 {
		pal = color.Palette{color.Black}
	}

	bounds := image.Rect(0, 0, e.width, e.height)
	paletted := image.NewPaletted(bounds, pal)
	draw.FloydSteinberg.Draw(paletted, bounds, img, img.Bounds().Min)

	e.frames = append(e.frames, paletted)
	e.delays = append(e.delays, delayMs/10)
	return nil
}

// End finalizes encoding and returns the GIF data.
func (e *QuantEncoder) End() ([]byte, error) {
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
func (e *QuantEncoder) Name() string {
	return "median-cut-gif"
}

// Ensure QuantEncoder implements ports.GifEncoder
var _ ports.GifEncoder = (*QuantEncoder)(nil)
