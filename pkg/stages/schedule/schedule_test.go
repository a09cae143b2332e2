package schedule

import (
	"errors"
	"math"
	"testing"

	"github.com/user/gifcast/pkg/pipeline"
)

func input(start, end, rate float64, tw, th, sw, sh int) pipeline.ScheduleInput {
	return pipeline.ScheduleInput{
		Request: pipeline.CaptureRequest{
			StartTime:    start,
			EndTime:      end,
			FrameRate:    rate,
			TargetWidth:  tw,
			TargetHeight: th,
		},
		SourceWidth:  sw,
		SourceHeight: sh,
	}
}

func TestComputeSchedule_FrameCount(t *testing.T) {
	tests := []struct {
		name             string
		start, end, rate float64
		expectedCount    int
		expectedInterval float64
	}{
		{
			name:  "2 seconds at 5 fps",
			start: 0, end: 2, rate: 5,
			expectedCount:    10,
			expectedInterval: 0.2,
		},
		{
			name:  "non-integral product rounds up",
			start: 1, end: 2.5, rate: 4,
			expectedCount:    6,
			expectedInterval: 0.25,
		},
		{
			name:  "sub-second segment",
			start: 10, end: 10.1, rate: 10,
			expectedCount:    1,
			expectedInterval: 0.1,
		},
		{
			name:  "fractional frame rate",
			start: 0, end: 3, rate: 2.5,
			expectedCount:    8,
			expectedInterval: 0.375,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeSchedule(input(tt.start, tt.end, tt.rate, 640, 360, 1920, 1080))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.FrameCount != tt.expectedCount {
				t.Errorf("frameCount: expected %d, got %d", tt.expectedCount, result.FrameCount)
			}
			if math.Abs(result.FrameInterval-tt.expectedInterval) > 1e-9 {
				t.Errorf("frameInterval: expected %v, got %v", tt.expectedInterval, result.FrameInterval)
			}
		})
	}
}

func TestComputeSchedule_Dimensions(t *testing.T) {
	tests := []struct {
		name           string
		sw, sh, tw, th int
		expectedW      int
		expectedH      int
	}{
		{
			name: "matching aspect kept verbatim",
			sw:   1920, sh: 1080, tw: 640, th: 360,
			expectedW: 640, expectedH: 360,
		},
		{
			name: "square request on wide source fits to width",
			sw:   1920, sh: 1080, tw: 500, th: 500,
			// round(500 / 1.778) = 281, floored even to 280
			expectedW: 500, expectedH: 280,
		},
		{
			name: "wide request on tall source fits to height",
			sw:   1080, sh: 1920, tw: 640, th: 360,
			// round(360 * 0.5625) = 203 -> 202, width floored even
			expectedW: 202, expectedH: 360,
		},
		{
			name: "odd request within tolerance floored even",
			sw:   1920, sh: 1080, tw: 641, th: 361,
			expectedW: 640, expectedH: 360,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeSchedule(input(0, 2, 5, tt.tw, tt.th, tt.sw, tt.sh))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.OutputWidth != tt.expectedW {
				t.Errorf("outputWidth: expected %d, got %d", tt.expectedW, result.OutputWidth)
			}
			if result.OutputHeight != tt.expectedH {
				t.Errorf("outputHeight: expected %d, got %d", tt.expectedH, result.OutputHeight)
			}
			if result.OutputWidth%2 != 0 || result.OutputHeight%2 != 0 {
				t.Errorf("dimensions must be even, got %dx%d", result.OutputWidth, result.OutputHeight)
			}
		})
	}
}

// TestComputeSchedule_FittingIdempotent verifies that feeding the scheduler's
// own output dimensions back in yields the same output.
func TestComputeSchedule_FittingIdempotent(t *testing.T) {
	sources := []struct{ sw, sh int }{
		{1920, 1080},
		{1280, 720},
		{640, 480},
		{1080, 1920},
	}
	requests := []struct{ tw, th int }{
		{500, 500},
		{640, 360},
		{320, 240},
		{777, 333},
	}

	for _, src := range sources {
		for _, req := range requests {
			first, err := ComputeSchedule(input(0, 1, 10, req.tw, req.th, src.sw, src.sh))
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			second, err := ComputeSchedule(input(0, 1, 10, first.OutputWidth, first.OutputHeight, src.sw, src.sh))
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if second.OutputWidth != first.OutputWidth || second.OutputHeight != first.OutputHeight {
				t.Errorf("source %dx%d request %dx%d: first %dx%d, second %dx%d",
					src.sw, src.sh, req.tw, req.th,
					first.OutputWidth, first.OutputHeight,
					second.OutputWidth, second.OutputHeight)
			}
		}
	}
}

func TestComputeSchedule_TargetTimestamps(t *testing.T) {
	result, err := ComputeSchedule(input(3, 5, 5, 640, 360, 1920, 1080))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < result.FrameCount; i++ {
		expected := 3 + float64(i)*0.2
		got := result.TargetTimestamp(3, i)
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("frame %d: expected target %v, got %v", i, expected, got)
		}
	}
}

func TestComputeSchedule_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input pipeline.ScheduleInput
	}{
		{"zero duration", input(2, 2, 5, 640, 360, 1920, 1080)},
		{"negative duration", input(5, 2, 5, 640, 360, 1920, 1080)},
		{"zero frame rate", input(0, 2, 0, 640, 360, 1920, 1080)},
		{"negative frame rate", input(0, 2, -1, 640, 360, 1920, 1080)},
		{"zero target width", input(0, 2, 5, 0, 360, 1920, 1080)},
		{"zero source height", input(0, 2, 5, 640, 360, 1920, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeSchedule(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var invalid *pipeline.InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Errorf("expected InvalidRequestError, got %T: %v", err, err)
			}
		})
	}
}
