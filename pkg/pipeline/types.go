package pipeline

import (
	"image"
	"image/color"
)

// =============================================================================
// Common Types
// =============================================================================

// Capture methods recorded in result metadata.
const (
	// MethodSeekAndVerify is the primary capture path with per-frame
	// seek polling and duplicate recovery.
	MethodSeekAndVerify = "seek-and-verify"

	// MethodInstantFallback is the bounded-latency single-pass capture used
	// when the primary path exceeds its deadline.
	MethodInstantFallback = "instant-fallback"
)

// PlaybackState is a snapshot of the video source's playback state, taken
// before a session starts and restored on every exit path.
type PlaybackState struct {
	CurrentTime float64
	Paused      bool
}

// TextOverlay describes a text caption drawn onto every captured frame.
// Position is given in percent of the frame dimensions.
type TextOverlay struct {
	Text        string
	XPercent    float64
	YPercent    float64
	FontSize    float64
	FontPath    string
	Color       color.Color
	StrokeColor color.Color // nil selects the default translucent black stroke
	StrokeWidth float64     // <= 0 selects the default width of 2
}

// =============================================================================
// Schedule Stage Types
// =============================================================================

// CaptureRequest describes the segment to capture, supplied by the caller.
type CaptureRequest struct {
	StartTime    float64 // Segment start in seconds
	EndTime      float64 // Segment end in seconds, must be > StartTime
	FrameRate    float64 // Frames per second, must be > 0
	TargetWidth  int     // Requested output width
	TargetHeight int     // Requested output height
	Quality      int     // Encoder quality 1-100
	Loop         int     // GIF loop count (0 = forever)
	Overlays     []TextOverlay
}

// Duration returns the length of the requested segment in seconds.
func (r CaptureRequest) Duration() float64 {
	return r.EndTime - r.StartTime
}

// ScheduleInput contains parameters for frame schedule computation.
type ScheduleInput struct {
	Request      CaptureRequest
	SourceWidth  int // Intrinsic width of the video source
	SourceHeight int // Intrinsic height of the video source
}

// FrameSchedule is the deterministic output contract of a session: exactly
// FrameCount frames, FrameInterval seconds apart, at the output dimensions.
type FrameSchedule struct {
	FrameCount    int     `json:"frameCount"`
	FrameInterval float64 `json:"frameInterval"`
	OutputWidth   int     `json:"outputWidth"`
	OutputHeight  int     `json:"outputHeight"`
}

// TargetTimestamp returns the ideal source position for frame index i.
func (s FrameSchedule) TargetTimestamp(startTime float64, i int) float64 {
	return startTime + float64(i)*s.FrameInterval
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput contains parameters for the capture loop.
type CaptureInput struct {
	Request  CaptureRequest
	Schedule FrameSchedule
}

// CapturedFrame is a single frame owned by the session's frame list.
// Pixels are deep-copied out of the reusable capture surface and immutable
// after being appended, except for in-place overlay compositing.
type CapturedFrame struct {
	Index           int
	TargetTimestamp float64
	ActualTimestamp float64
	Pixels          *image.RGBA
	IsDuplicate     bool
}

// CaptureResult contains the captured frame sequence.
type CaptureResult struct {
	Frames              []CapturedFrame
	Method              string // MethodSeekAndVerify or MethodInstantFallback
	DuplicatesRecovered int    // Frames replaced by a successful recovery re-seek
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains parameters for overlay compositing.
type CompositeInput struct {
	Frames   []CapturedFrame
	Overlays []TextOverlay
}

// CompositeResult contains the frames after compositing. Frame pixel buffers
// are mutated in place; the slice is the same one passed in.
type CompositeResult struct {
	Frames []CapturedFrame
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for GIF encoding.
type EncodeInput struct {
	Frames    []CapturedFrame
	Width     int
	Height    int
	Quality   int     // 1-100
	FrameRate float64 // Frames per second
	Loop      int     // Loop count (0 = forever)
}

// ResultMetadata describes the encoded output.
type ResultMetadata struct {
	FileSize         int64   `json:"fileSize"`
	DurationMs       int     `json:"durationMs"`
	FrameCount       int     `json:"frameCount"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Encoder          string  `json:"encoder"`
	ExtractionMethod string  `json:"extractionMethod"`
	ActualFrameRate  float64 `json:"actualFrameRate"`
	EncodingTimeMs   int64   `json:"encodingTimeMs"`
}

// EncodingResult is the final output of a session: the GIF blob plus metadata.
type EncodingResult struct {
	Data     []byte
	Metadata ResultMetadata
}
