// Package summarizer provides summary generation for capture sessions.
package summarizer

import "time"

// Summary contains all data collected during a capture session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source information
	Source SourceInfo

	// Requested segment
	Segment SegmentInfo

	// Capture results
	Capture CaptureInfo

	// Output details
	Output OutputInfo
}

// SourceInfo identifies the captured video.
type SourceInfo struct {
	URL      string
	Selector string
}

// SegmentInfo describes the requested segment.
type SegmentInfo struct {
	StartTime float64
	EndTime   float64
	FrameRate float64
}

// CaptureInfo contains capture statistics.
type CaptureInfo struct {
	FrameCount          int
	Method              string
	DuplicatesRecovered int
	ActualFrameRate     float64
}

// OutputInfo contains information about the encoded GIF.
type OutputInfo struct {
	Path       string
	Width      int
	Height     int
	DurationMs int
	FileSize   int64
	Encoder    string
	Quality    int
	Loop       int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source information.
func (b *Builder) WithSource(url, selector string) *Builder {
	b.summary.Source = SourceInfo{
		URL:      url,
		Selector: selector,
	}
	return b
}

// WithSegment sets the requested segment.
func (b *Builder) WithSegment(start, end, frameRate float64) *Builder {
	b.summary.Segment = SegmentInfo{
		StartTime: start,
		EndTime:   end,
		FrameRate: frameRate,
	}
	return b
}

// WithCapture sets capture statistics.
func (b *Builder) WithCapture(capture CaptureInfo) *Builder {
	b.summary.Capture = capture
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
