package progress

import (
	"testing"
	"time"

	"github.com/user/gifcast/pkg/adapters/logger"
	"github.com/user/gifcast/pkg/mocks"
)

func quietOptions() Options {
	return Options{
		CyclePeriod: time.Hour, // Cycling effectively disabled
		Throttle:    time.Nanosecond,
	}
}

func TestReporter_StageTransitions(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	r.EnterStage(StageCapturing)
	r.EnterStage(StageAnalyzing)
	r.EnterStage(StageEncoding)
	r.EnterStage(StageFinalizing)
	r.Complete()

	events := sink.Events()
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}

	expectedStages := []string{StageCapturing, StageAnalyzing, StageEncoding, StageFinalizing, StageCompleted}
	for i, expected := range expectedStages {
		if events[i].Stage != expected {
			t.Errorf("event %d: stage %q, expected %q", i, events[i].Stage, expected)
		}
	}
	for i, number := range []int{1, 2, 3, 4} {
		if events[i].StageNumber != number {
			t.Errorf("event %d: stage number %d, expected %d", i, events[i].StageNumber, number)
		}
		if events[i].TotalStages != 4 {
			t.Errorf("event %d: total stages %d", i, events[i].TotalStages)
		}
	}
	if events[4].Progress != 100 {
		t.Errorf("completed event: progress %v, expected 100", events[4].Progress)
	}
}

func TestReporter_ProgressMonotonic(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	r.EnterStage(StageCapturing)
	for i := 1; i <= 10; i++ {
		r.FrameCaptured(i, 10, 10*time.Millisecond, float64(i*10))
	}
	r.EnterStage(StageAnalyzing)
	r.EnterStage(StageEncoding)
	r.EnterStage(StageFinalizing)
	r.Complete()

	events := sink.Events()
	last := -1.0
	for i, ev := range events {
		if ev.Progress < last {
			t.Errorf("event %d (%s): progress %v decreased from %v", i, ev.Stage, ev.Progress, last)
		}
		last = ev.Progress
	}
}

func TestReporter_CaptureCarriesBufferingStatus(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	r.EnterStage(StageCapturing)
	r.FrameCaptured(1, 4, 100*time.Millisecond, 50)

	last := sink.Last()
	if last.BufferingStatus == nil {
		t.Fatal("capture emission must carry a buffering status")
	}
	bs := last.BufferingStatus
	if bs.CurrentFrame != 1 || bs.TotalFrames != 4 {
		t.Errorf("buffering status frames: %d/%d", bs.CurrentFrame, bs.TotalFrames)
	}
	if bs.BufferedPercentage != 50 {
		t.Errorf("buffered percentage: %v", bs.BufferedPercentage)
	}
	// One 100ms frame, 3 remaining -> 0.3s
	if bs.EstimatedTimeRemaining < 0.29 || bs.EstimatedTimeRemaining > 0.31 {
		t.Errorf("eta: %v, expected ~0.3", bs.EstimatedTimeRemaining)
	}
}

func TestReporter_EtaMovingAverageWindow(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	r.EnterStage(StageCapturing)
	// Five slow frames followed by five fast ones: the window must have
	// dropped the slow durations entirely.
	for i := 1; i <= 5; i++ {
		r.FrameCaptured(i, 20, time.Second, 0)
	}
	for i := 6; i <= 10; i++ {
		r.FrameCaptured(i, 20, 10*time.Millisecond, 0)
	}

	bs := sink.Last().BufferingStatus
	if bs == nil {
		t.Fatal("missing buffering status")
	}
	// avg 10ms * 10 remaining = 0.1s
	if bs.EstimatedTimeRemaining > 0.2 {
		t.Errorf("eta %v still dominated by old slow frames", bs.EstimatedTimeRemaining)
	}
}

func TestReporter_ThrottlesCaptureEmissions(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), Options{
		CyclePeriod: time.Hour,
		Throttle:    time.Hour, // Nothing but the final frame gets through
	})
	defer r.Stop()

	r.EnterStage(StageCapturing)
	before := len(sink.Events())
	for i := 1; i <= 9; i++ {
		r.FrameCaptured(i, 10, time.Millisecond, 0)
	}
	if got := len(sink.Events()); got != before {
		t.Errorf("expected all intermediate emissions throttled, got %d extra", got-before)
	}

	r.FrameCaptured(10, 10, time.Millisecond, 0)
	if got := len(sink.Events()); got != before+1 {
		t.Errorf("final frame must always flush, got %d events", got-before)
	}
}

func TestReporter_MessageCycling(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), Options{
		CyclePeriod: 10 * time.Millisecond,
		Throttle:    time.Nanosecond,
	})
	defer r.Stop()

	r.EnterStage(StageCapturing)
	time.Sleep(60 * time.Millisecond)
	r.Stop()

	events := sink.Events()
	if len(events) < 3 {
		t.Fatalf("expected cycled message emissions, got %d events", len(events))
	}
	seen := map[string]bool{}
	for _, ev := range events {
		seen[ev.Message] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected multiple distinct cycled messages, got %v", seen)
	}
}

func TestReporter_SinkPanicIgnored(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	sink.PanicOn = StageCapturing
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	// Must not panic through.
	r.EnterStage(StageCapturing)
	r.FrameCaptured(1, 2, time.Millisecond, 0)
	r.EnterStage(StageAnalyzing)

	if sink.Last().Stage != StageAnalyzing {
		t.Errorf("pipeline must continue past sink panics, last stage %q", sink.Last().Stage)
	}
}

func TestReporter_ResetStartsNewSession(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	r.EnterStage(StageCapturing)
	r.Complete()
	r.Reset()

	before := len(sink.Events())
	r.EnterStage(StageCapturing)
	r.FrameCaptured(1, 2, time.Millisecond, 0)
	r.Complete()

	events := sink.Events()[before:]
	if len(events) != 3 {
		t.Fatalf("expected 3 events after reset, got %d", len(events))
	}
	if events[0].Stage != StageCapturing {
		t.Errorf("first event stage %q, expected capturing", events[0].Stage)
	}
	// The finished session's 100% floor must not leak into the new one.
	if events[0].Progress != 0 {
		t.Errorf("first event progress %v, expected 0", events[0].Progress)
	}
	last := events[len(events)-1]
	if last.Stage != StageCompleted || last.Progress != 100 {
		t.Errorf("final event %+v", last)
	}
}

func TestReporter_FailFromAnyStage(t *testing.T) {
	sink := mocks.NewProgressRecorder()
	r := New(sink, logger.NewNoop(), quietOptions())
	defer r.Stop()

	r.EnterStage(StageEncoding)
	r.Fail(nil)

	last := sink.Last()
	if last.Stage != StageError {
		t.Fatalf("expected error stage, got %q", last.Stage)
	}

	// Terminal: further transitions are ignored.
	r.EnterStage(StageFinalizing)
	if sink.Last().Stage != StageError {
		t.Error("transitions after a terminal state must be ignored")
	}
}
