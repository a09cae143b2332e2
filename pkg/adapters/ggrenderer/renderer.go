// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a drawing canvas directly over the frame's pixels.
func (r *Renderer) CreateCanvas(frame *image.RGBA) (ports.Canvas, error) {
	if frame == nil || frame.Rect.Dx() <= 0 || frame.Rect.Dy() <= 0 {
		return nil, pipeline.ErrSurfaceUnavailable
	}
	return &Canvas{dc: gg.NewContextForRGBA(frame)}, nil
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		// Try to auto-detect
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ScaleInto scales src into dst, filling dst's bounds.
func (r *Renderer) ScaleInto(dst *image.RGBA, src image.Image) {
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context. The context draws into
// the frame buffer it was created over, so Flush is a no-op.
type Canvas struct {
	dc *gg.Context
}

// DrawText draws filled text centered at the given point.
func (c *Canvas) DrawText(text string, x, y float64, style ports.TextStyle) {
	c.applyFont(style)
	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// DrawTextStroked draws an outline by repeating the string at small offsets
// around the anchor, then draws the fill on top. gg has no native text
// stroking.
func (c *Canvas) DrawTextStroked(text string, x, y float64, style ports.TextStyle, stroke color.Color, strokeWidth float64) {
	c.applyFont(style)

	c.dc.SetColor(stroke)
	for dy := -strokeWidth; dy <= strokeWidth; dy += strokeWidth {
		for dx := -strokeWidth; dx <= strokeWidth; dx += strokeWidth {
			if dx == 0 && dy == 0 {
				continue
			}
			c.dc.DrawStringAnchored(text, x+dx, y+dy, 0.5, 0.5)
		}
	}

	c.dc.SetColor(style.Color)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// MeasureText returns the width and height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.applyFont(style)
	w, _ := c.dc.MeasureString(text)
	return w, style.FontSize
}

// Flush is a no-op: the context writes directly into the frame buffer.
func (c *Canvas) Flush() {}

func (c *Canvas) applyFont(style ports.TextStyle) {
	if style.FontPath != "" {
		if err := c.dc.LoadFontFace(style.FontPath, style.FontSize); err != nil {
			// Fall back to the default face
		}
	}
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
