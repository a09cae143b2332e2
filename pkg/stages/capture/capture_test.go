package capture

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/user/gifcast/pkg/adapters/logger"
	"github.com/user/gifcast/pkg/adapters/nullsink"
	"github.com/user/gifcast/pkg/mocks"
	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/progress"
)

// fastTiming keeps the test suite quick while preserving the loop structure.
func fastTiming() Timing {
	t := DefaultTiming()
	t.SettleDelay = 0
	t.PollInterval = 0
	t.MaxPollAttempts = 3
	t.StallAttempts = 2
	t.PostSeekDelay = 0
	t.LongSeekDelay = 0
	t.FallbackSettle = 0
	return t
}

func testInput(start, end, rate float64, w, h int) pipeline.CaptureInput {
	duration := end - start
	count := int(math.Ceil(duration * rate))
	return pipeline.CaptureInput{
		Request: pipeline.CaptureRequest{
			StartTime: start,
			EndTime:   end,
			FrameRate: rate,
		},
		Schedule: pipeline.FrameSchedule{
			FrameCount:    count,
			FrameInterval: duration / float64(count),
			OutputWidth:   w,
			OutputHeight:  h,
		},
	}
}

func testReporter() *progress.Reporter {
	return progress.New(mocks.NewProgressRecorder(), logger.NewNoop(), progress.Options{
		CyclePeriod: time.Hour,
		Throttle:    time.Nanosecond,
	})
}

func newTestStage(source *mocks.VideoSource) *Stage {
	return New(source, testReporter(), nullsink.New(), logger.NewNoop(), fastTiming())
}

func TestStage_CapturesScheduledFrames(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	stage := newTestStage(source)

	input := testInput(0, 2, 5, 64, 36)
	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Method != pipeline.MethodSeekAndVerify {
		t.Errorf("method: expected %q, got %q", pipeline.MethodSeekAndVerify, result.Method)
	}
	if len(result.Frames) != 10 {
		t.Fatalf("expected 10 frames, got %d", len(result.Frames))
	}
	if source.PauseCalls == 0 {
		t.Error("source must be paused for the capture")
	}

	for i, frame := range result.Frames {
		if frame.Index != i {
			t.Errorf("frame %d: index %d", i, frame.Index)
		}
		expectedTarget := float64(i) * 0.2
		if math.Abs(frame.TargetTimestamp-expectedTarget) > 1e-9 {
			t.Errorf("frame %d: target %v, expected %v", i, frame.TargetTimestamp, expectedTarget)
		}
		if frame.IsDuplicate {
			t.Errorf("frame %d unexpectedly flagged duplicate", i)
		}
		if frame.Pixels == nil {
			t.Fatalf("frame %d has no pixels", i)
		}
		if frame.Pixels.Rect.Dx() != 64 || frame.Pixels.Rect.Dy() != 36 {
			t.Errorf("frame %d: dimensions %dx%d", i, frame.Pixels.Rect.Dx(), frame.Pixels.Rect.Dy())
		}
	}
}

func TestStage_FramesAreDeepCopies(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	stage := newTestStage(source)

	result, err := stage.Execute(context.Background(), testInput(0, 1, 2, 16, 16))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(result.Frames))
	}
	if result.Frames[0].Pixels == result.Frames[1].Pixels {
		t.Fatal("frames share a pixel buffer")
	}
	// Frames at distinct positions must have distinct content; shared
	// surfaces would make them identical.
	if result.Frames[0].Pixels.Pix[0] == result.Frames[1].Pixels.Pix[0] {
		t.Error("consecutive frames have identical pixels, surface copy is broken")
	}
}

// TestStage_StuckVideoAborts verifies that at frameRate 5 (bound 5) the 5th
// consecutive duplicate aborts the session while the 4th does not.
func TestStage_StuckVideoAborts(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	source.Stuck = true // Position never advances: every frame is identical
	stage := newTestStage(source)

	_, err := stage.Execute(context.Background(), testInput(0, 4, 5, 32, 18))
	if err == nil {
		t.Fatal("expected StuckVideoError, got nil")
	}
	var stuck *pipeline.StuckVideoError
	if !errors.As(err, &stuck) {
		t.Fatalf("expected StuckVideoError, got %T: %v", err, err)
	}
	if stuck.Duplicates != 5 {
		t.Errorf("expected 5 duplicates in error, got %d", stuck.Duplicates)
	}
}

func TestStage_FourDuplicatesSurvive(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	// Frames at t < 0.9 all render the same color; later frames are
	// distinct. At 5 fps that yields exactly 4 consecutive duplicates.
	source.FrameColor = func(t float64) color.RGBA {
		if t < 0.9 {
			return color.RGBA{R: 42, G: 42, B: 42, A: 255}
		}
		return color.RGBA{R: uint8(int(t*1000) % 251), G: 200, B: 10, A: 255}
	}
	stage := newTestStage(source)

	result, err := stage.Execute(context.Background(), testInput(0, 2, 5, 32, 18))
	if err != nil {
		t.Fatalf("4 consecutive duplicates must not abort, got %v", err)
	}
	if len(result.Frames) != 10 {
		t.Fatalf("expected 10 frames, got %d", len(result.Frames))
	}
	for i := 1; i <= 4; i++ {
		if !result.Frames[i].IsDuplicate {
			t.Errorf("frame %d: expected duplicate flag", i)
		}
	}
	if result.Frames[5].IsDuplicate {
		t.Error("frame 5 should be distinct again")
	}
}

func TestStage_RecoveryReplacesDuplicate(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	// The source lands well off target so a recovery re-seek is warranted.
	source.SeekOffset = 0.2
	// The second capture repeats the first frame's color; the recovery
	// capture (third) and everything after are distinct.
	captures := 0
	source.FrameColor = func(t float64) color.RGBA {
		captures++
		if captures <= 2 {
			return color.RGBA{R: 1, G: 2, B: 3, A: 255}
		}
		return color.RGBA{R: uint8(captures * 7 % 251), G: uint8(captures % 251), B: 99, A: 255}
	}
	stage := newTestStage(source)

	result, err := stage.Execute(context.Background(), testInput(0, 1, 4, 32, 18))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DuplicatesRecovered != 1 {
		t.Errorf("expected 1 recovered duplicate, got %d", result.DuplicatesRecovered)
	}
	for i, frame := range result.Frames {
		if frame.IsDuplicate {
			t.Errorf("frame %d still flagged duplicate after recovery", i)
		}
	}
}

func TestStage_ContextCancelled(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	stage := newTestStage(source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := stage.Execute(ctx, testInput(0, 2, 5, 32, 18))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Frames) != 0 {
		t.Errorf("expected no frames after immediate cancellation, got %d", len(result.Frames))
	}
}

func TestStage_InvalidSurfaceDimensions(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	stage := newTestStage(source)

	input := testInput(0, 1, 5, 0, 0)
	_, err := stage.Execute(context.Background(), input)
	if !errors.Is(err, pipeline.ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
}

func TestFallback_CapturesAllFrames(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	stage := NewFallback(source, nullsink.New(), logger.NewNoop(), fastTiming())

	result, err := stage.Execute(context.Background(), testInput(0, 2, 5, 32, 18))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Method != pipeline.MethodInstantFallback {
		t.Errorf("method: expected %q, got %q", pipeline.MethodInstantFallback, result.Method)
	}
	if len(result.Frames) != 10 {
		t.Fatalf("expected 10 frames, got %d", len(result.Frames))
	}
	if len(source.SeekCalls) != 10 {
		t.Errorf("expected exactly one seek per frame, got %d", len(source.SeekCalls))
	}
}

func TestSeekController_WarnsOnInaccuracy(t *testing.T) {
	source := mocks.NewVideoSource(1920, 1080, 60)
	source.SeekOffset = 0.5

	seek := &seekController{source: source, logger: logger.NewNoop(), timing: fastTiming()}
	actual, err := seek.seekTo(2.0)
	if err != nil {
		t.Fatalf("imprecise seeks must not fail: %v", err)
	}
	if math.Abs(actual-2.5) > 1e-9 {
		t.Errorf("expected best-effort position 2.5, got %v", actual)
	}
}
