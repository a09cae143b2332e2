package summarizer

import (
	"testing"
	"time"
)

func TestBuilder_FluentConstruction(t *testing.T) {
	summary := NewBuilder().
		WithSource("https://example.com/watch", "video").
		WithSegment(1, 3, 5).
		WithCapture(CaptureInfo{
			FrameCount:          10,
			Method:              "seek-and-verify",
			DuplicatesRecovered: 2,
		}).
		WithOutput(OutputInfo{
			Path:     "/out/clip.gif",
			Width:    480,
			Height:   270,
			FileSize: 1024,
			Encoder:  "median-cut-gif",
		}).
		Build()

	if summary.Source.URL != "https://example.com/watch" {
		t.Errorf("source url %q", summary.Source.URL)
	}
	if summary.Segment.StartTime != 1 || summary.Segment.EndTime != 3 {
		t.Errorf("segment %+v", summary.Segment)
	}
	if summary.Capture.FrameCount != 10 || summary.Capture.DuplicatesRecovered != 2 {
		t.Errorf("capture %+v", summary.Capture)
	}
	if summary.Output.Encoder != "median-cut-gif" {
		t.Errorf("output %+v", summary.Output)
	}
	if summary.GeneratedAt.IsZero() {
		t.Error("generated timestamp not set")
	}
}

func TestNewSummary_Timestamp(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", summary.GeneratedAt, before, after)
	}
}
