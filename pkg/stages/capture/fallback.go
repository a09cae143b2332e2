package capture

import (
	"context"
	"time"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// FallbackStage is the bounded-latency capture path used when the primary
// path misses its deadline. It takes one frame per scheduled interval without
// the poll/verify/duplicate-recovery loop, accepting whatever the source
// currently shows. It sacrifices frame accuracy for a guaranteed termination.
type FallbackStage struct {
	source ports.VideoSource
	sink   ports.DebugSink
	logger ports.Logger
	timing Timing
}

// NewFallback creates the fallback capture stage.
func NewFallback(source ports.VideoSource, sink ports.DebugSink, logger ports.Logger, timing Timing) *FallbackStage {
	return &FallbackStage{
		source: source,
		sink:   sink,
		logger: logger.WithComponent("fallback"),
		timing: timing,
	}
}

// Execute performs the single simplified capture pass.
func (s *FallbackStage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{
		Frames: make([]pipeline.CapturedFrame, 0, input.Schedule.FrameCount),
		Method: pipeline.MethodInstantFallback,
	}

	surfaces, err := newSurfacePair(input.Schedule.OutputWidth, input.Schedule.OutputHeight)
	if err != nil {
		return result, err
	}

	if err := s.source.Pause(); err != nil {
		return result, err
	}

	s.logger.Debug("Fallback capture of %d frames", input.Schedule.FrameCount)

	for i := 0; i < input.Schedule.FrameCount; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		target := input.Schedule.TargetTimestamp(input.Request.StartTime, i)
		if err := s.source.SetCurrentTime(target); err != nil {
			return result, err
		}
		time.Sleep(s.timing.FallbackSettle)

		if err := s.source.CaptureFrame(surfaces.current); err != nil {
			return result, err
		}

		actual := target
		if t, err := s.source.CurrentTime(); err == nil {
			actual = t
		}

		frame := pipeline.CapturedFrame{
			Index:           i,
			TargetTimestamp: target,
			ActualTimestamp: actual,
			Pixels:          copyPixels(surfaces.current),
		}
		result.Frames = append(result.Frames, frame)

		if s.sink.Enabled() {
			s.sink.SaveCapturedFrame(i, frame.Pixels)
		}
	}

	return result, nil
}
