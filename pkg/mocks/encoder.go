package mocks

import (
	"errors"
	"image"

	"github.com/user/gifcast/pkg/ports"
)

// GifEncoder is a mock implementation of ports.GifEncoder.
type GifEncoder struct {
	BeginFunc    func(width, height int, opts ports.GifOptions) error
	AddFrameFunc func(img *image.RGBA, delayMs int) error
	EndFunc      func() ([]byte, error)

	Began      bool
	BeginWidth int
	BeginHeight int
	BeginOpts  ports.GifOptions
	Delays     []int
	FrameCount int
	Ended      bool
}

// NewGifEncoder creates a new mock encoder.
func NewGifEncoder() *GifEncoder {
	return &GifEncoder{}
}

func (m *GifEncoder) Begin(width, height int, opts ports.GifOptions) error {
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, opts)
	}
	m.Began = true
	m.BeginWidth = width
	m.BeginHeight = height
	m.BeginOpts = opts
	return nil
}

func (m *GifEncoder) AddFrame(img *image.RGBA, delayMs int) error {
	if m.AddFrameFunc != nil {
		return m.AddFrameFunc(img, delayMs)
	}
	if !m.Began {
		return errors.New("mock encoder: AddFrame before Begin")
	}
	m.Delays = append(m.Delays, delayMs)
	m.FrameCount++
	return nil
}

func (m *GifEncoder) End() ([]byte, error) {
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	m.Ended = true
	return []byte("GIF89a-mock"), nil
}

func (m *GifEncoder) Name() string {
	return "mock"
}

// Ensure GifEncoder implements ports.GifEncoder
var _ ports.GifEncoder = (*GifEncoder)(nil)
