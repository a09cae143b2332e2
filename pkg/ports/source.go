// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
)

// Media element ready states, mirroring HTMLMediaElement.readyState.
const (
	HaveNothing     = 0
	HaveMetadata    = 1
	HaveCurrentData = 2
	HaveFutureData  = 3
	HaveEnoughData  = 4
)

// TimeRange represents a buffered time range of the video source, in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// Contains reports whether t falls inside the range.
func (r TimeRange) Contains(t float64) bool {
	return t >= r.Start && t <= r.End
}

// VideoSource abstracts a playing video element that the capture pipeline
// drives. Seeks are requests, not guarantees: the source decides when a frame
// is actually decoded, and the reported position may differ from the one set.
type VideoSource interface {
	// Attach connects to the video source with the given options.
	Attach(ctx context.Context, opts SourceOptions) error

	// CurrentTime returns the current playback position in seconds.
	CurrentTime() (float64, error)

	// SetCurrentTime requests a seek to the given position in seconds.
	SetCurrentTime(seconds float64) error

	// Pause pauses playback.
	Pause() error

	// Play resumes playback.
	Play() error

	// Paused reports whether playback is currently paused.
	Paused() (bool, error)

	// Duration returns the total duration of the video in seconds.
	Duration() (float64, error)

	// IntrinsicSize returns the video's intrinsic pixel dimensions.
	IntrinsicSize() (width, height int, err error)

	// ReadyState returns the decoded-data level (HaveNothing..HaveEnoughData).
	ReadyState() (int, error)

	// BufferedRanges returns the currently buffered time ranges.
	BufferedRanges() ([]TimeRange, error)

	// CaptureFrame draws the currently displayed frame into dst, scaled to
	// dst's bounds. The destination buffer is reused across calls; callers
	// must copy the pixels out before the next capture.
	CaptureFrame(dst *image.RGBA) error

	// Close releases the connection to the source.
	Close() error
}

// SourceOptions configures how a video source is located and attached.
type SourceOptions struct {
	URL               string            // Page URL containing the video
	Selector          string            // CSS selector for the video element (default: "video")
	ChromePath        string            // Path to Chrome executable
	Headless          bool              // Run browser headless
	Headers           map[string]string // Extra HTTP headers
	IgnoreHTTPSErrors bool              // Ignore HTTPS certificate errors
	ProxyServer       string            // HTTP proxy server (e.g., "http://proxy:8080")
	AttachTimeoutMs   int               // Timeout waiting for the video element to appear
}
