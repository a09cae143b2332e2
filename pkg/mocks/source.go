// Package mocks provides mock implementations of ports interfaces for testing.
package mocks

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/user/gifcast/pkg/ports"
)

// VideoSource is a scripted mock implementation of ports.VideoSource.
// By default every distinct position produces a distinct solid-color frame,
// so duplicate detection sees distinct frames as long as seeks advance.
type VideoSource struct {
	mu          sync.Mutex
	attached    bool
	currentTime float64
	paused      bool

	// Static properties
	VideoDuration float64
	Width         int
	Height        int

	// Behavior knobs
	SeekOffset   float64                      // Imprecision added to every requested position
	Stuck        bool                         // When true the position never changes
	StuckAfter   int                          // Seeks after which Stuck engages (0 = immediately when Stuck)
	Ready        int                          // Reported ready state
	Buffered     []ports.TimeRange            // Reported buffered ranges (nil = fully buffered)
	FrameColor   func(t float64) color.RGBA   // Frame content by position
	CaptureDelay time.Duration                // Per-capture latency, for deadline tests
	AttachErr    error
	CurrentErr   error
	CaptureErr   error

	// Call records
	SeekCalls    []float64
	CaptureCalls int
	PauseCalls   int
	PlayCalls    int
}

// NewVideoSource creates a mock source with the given intrinsic size and
// duration, fully buffered and ready.
func NewVideoSource(width, height int, duration float64) *VideoSource {
	return &VideoSource{
		Width:         width,
		Height:        height,
		VideoDuration: duration,
		Ready:         ports.HaveEnoughData,
	}
}

func (s *VideoSource) Attach(ctx context.Context, opts ports.SourceOptions) error {
	if s.AttachErr != nil {
		return s.AttachErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = true
	return nil
}

func (s *VideoSource) CurrentTime() (float64, error) {
	if s.CurrentErr != nil {
		return 0, s.CurrentErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime, nil
}

func (s *VideoSource) SetCurrentTime(seconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SeekCalls = append(s.SeekCalls, seconds)
	if s.Stuck && len(s.SeekCalls) > s.StuckAfter {
		return nil
	}
	s.currentTime = seconds + s.SeekOffset
	return nil
}

func (s *VideoSource) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PauseCalls++
	s.paused = true
	return nil
}

func (s *VideoSource) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PlayCalls++
	s.paused = false
	return nil
}

func (s *VideoSource) Paused() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused, nil
}

func (s *VideoSource) Duration() (float64, error) {
	return s.VideoDuration, nil
}

func (s *VideoSource) IntrinsicSize() (int, int, error) {
	return s.Width, s.Height, nil
}

func (s *VideoSource) ReadyState() (int, error) {
	return s.Ready, nil
}

func (s *VideoSource) BufferedRanges() ([]ports.TimeRange, error) {
	if s.Buffered != nil {
		return s.Buffered, nil
	}
	return []ports.TimeRange{{Start: 0, End: s.VideoDuration}}, nil
}

func (s *VideoSource) CaptureFrame(dst *image.RGBA) error {
	if s.CaptureErr != nil {
		return s.CaptureErr
	}
	if s.CaptureDelay > 0 {
		time.Sleep(s.CaptureDelay)
	}
	s.mu.Lock()
	t := s.currentTime
	s.CaptureCalls++
	frameColor := s.FrameColor
	s.mu.Unlock()

	if frameColor == nil {
		frameColor = defaultFrameColor
	}
	fill(dst, frameColor(t))
	return nil
}

func (s *VideoSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
	return nil
}

// SetPlaybackState seeds the pre-session position and paused flag.
func (s *VideoSource) SetPlaybackState(t float64, paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTime = t
	s.paused = paused
}

// PlaybackState reports the current position and paused flag.
func (s *VideoSource) PlaybackState() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTime, s.paused
}

// defaultFrameColor maps a position to a solid color, distinct per
// millisecond of position.
func defaultFrameColor(t float64) color.RGBA {
	n := int(t * 1000)
	return color.RGBA{
		R: uint8(n % 251),
		G: uint8((n / 251) % 251),
		B: uint8((n / 62501) % 251),
		A: 255,
	}
}

func fill(dst *image.RGBA, c color.RGBA) {
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}

// Ensure VideoSource implements ports.VideoSource
var _ ports.VideoSource = (*VideoSource)(nil)
