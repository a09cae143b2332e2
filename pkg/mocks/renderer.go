package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// TextCall records one text drawing operation on a canvas.
type TextCall struct {
	Text        string
	X, Y        float64
	Style       ports.TextStyle
	Stroke      color.Color
	StrokeWidth float64
}

// Renderer is a recording implementation of ports.Renderer. Canvases stamp a
// marker pixel at each draw position so tests can assert that frames were
// actually touched.
type Renderer struct {
	CreateErr error

	mu    sync.Mutex
	calls []TextCall
}

// NewRenderer creates a recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Calls returns a snapshot of all recorded text operations across canvases.
func (r *Renderer) Calls() []TextCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TextCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *Renderer) record(c TextCall) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

func (r *Renderer) CreateCanvas(frame *image.RGBA) (ports.Canvas, error) {
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	if frame == nil {
		return nil, pipeline.ErrSurfaceUnavailable
	}
	return &recordingCanvas{renderer: r, frame: frame}, nil
}

func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	return []byte{0}, nil
}

func (r *Renderer) ScaleInto(dst *image.RGBA, src image.Image) {
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			dst.Set(x, y, src.At(src.Bounds().Min.X, src.Bounds().Min.Y))
		}
	}
}

type recordingCanvas struct {
	renderer *Renderer
	frame    *image.RGBA
}

func (c *recordingCanvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.renderer.record(TextCall{Text: text, X: x, Y: y, Style: style})
	c.stamp(x, y, style.Color)
}

func (c *recordingCanvas) DrawTextStroked(text string, x, y float64, style ports.TextStyle, stroke color.Color, strokeWidth float64) {
	c.renderer.record(TextCall{Text: text, X: x, Y: y, Style: style, Stroke: stroke, StrokeWidth: strokeWidth})
	c.stamp(x, y, style.Color)
}

func (c *recordingCanvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len(text)) * style.FontSize * 0.6, style.FontSize
}

func (c *recordingCanvas) Flush() {}

func (c *recordingCanvas) stamp(x, y float64, col color.Color) {
	if col == nil {
		col = color.White
	}
	px, py := int(x), int(y)
	if image.Pt(px, py).In(c.frame.Rect) {
		c.frame.Set(px, py, col)
	}
}
