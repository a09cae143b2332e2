package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a drawing canvas over an existing frame buffer.
	// The canvas draws directly into the buffer's pixels.
	CreateCanvas(frame *image.RGBA) (Canvas, error)

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ScaleInto scales src into dst, filling dst's bounds.
	ScaleInto(dst *image.RGBA, src image.Image)
}

// Canvas provides drawing operations for frame compositing.
type Canvas interface {
	// DrawText draws filled text centered at the given point.
	DrawText(text string, x, y float64, style TextStyle)

	// DrawTextStroked draws stroked then filled text centered at the point.
	DrawTextStroked(text string, x, y float64, style TextStyle, stroke color.Color, strokeWidth float64)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// Flush writes any pending drawing back to the underlying frame buffer.
	Flush()
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
