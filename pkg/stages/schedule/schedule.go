// Package schedule implements the frame schedule calculation stage.
package schedule

import (
	"context"
	"math"

	"github.com/user/gifcast/pkg/pipeline"
)

// aspectTolerance is the relative aspect-ratio difference below which the
// requested dimensions are used verbatim.
const aspectTolerance = 0.02

// Stage computes the frame schedule for a capture session.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new schedule stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute computes the schedule based on the input parameters.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScheduleInput) (pipeline.FrameSchedule, error) {
	return ComputeSchedule(input)
}

// ComputeSchedule derives the frame count, frame interval and output
// dimensions for a capture request. Exposed as a standalone function for
// testing and reuse.
//
// frameCount = ceil(duration * frameRate), frameInterval = duration / frameCount.
// Dimensions preserve the source aspect ratio unless the requested aspect is
// already within tolerance, and are floored to even integers (encoder
// constraint).
func ComputeSchedule(input pipeline.ScheduleInput) (pipeline.FrameSchedule, error) {
	req := input.Request

	duration := req.Duration()
	if duration <= 0 {
		return pipeline.FrameSchedule{}, &pipeline.InvalidRequestError{Reason: "end time must be after start time"}
	}
	if req.FrameRate <= 0 {
		return pipeline.FrameSchedule{}, &pipeline.InvalidRequestError{Reason: "frame rate must be positive"}
	}
	if req.TargetWidth <= 0 || req.TargetHeight <= 0 {
		return pipeline.FrameSchedule{}, &pipeline.InvalidRequestError{Reason: "target dimensions must be positive"}
	}
	if input.SourceWidth <= 0 || input.SourceHeight <= 0 {
		return pipeline.FrameSchedule{}, &pipeline.InvalidRequestError{Reason: "source dimensions must be positive"}
	}

	frameCount := int(math.Ceil(duration * req.FrameRate))
	frameInterval := duration / float64(frameCount)

	width, height := fitDimensions(
		input.SourceWidth, input.SourceHeight,
		req.TargetWidth, req.TargetHeight,
	)

	return pipeline.FrameSchedule{
		FrameCount:    frameCount,
		FrameInterval: frameInterval,
		OutputWidth:   width,
		OutputHeight:  height,
	}, nil
}

// fitDimensions computes aspect-ratio-preserving output dimensions.
// If the requested aspect is within tolerance of the source aspect the
// requested dimensions are kept; otherwise the output is fitted to the
// requested width or height, whichever is the binding constraint.
func fitDimensions(sourceWidth, sourceHeight, targetWidth, targetHeight int) (int, int) {
	sourceAspect := float64(sourceWidth) / float64(sourceHeight)
	targetAspect := float64(targetWidth) / float64(targetHeight)

	width := targetWidth
	height := targetHeight

	if math.Abs(sourceAspect-targetAspect)/sourceAspect > aspectTolerance {
		if sourceAspect > targetAspect {
			// Source is wider: fit to requested width
			height = int(math.Round(float64(width) / sourceAspect))
		} else {
			// Source is taller: fit to requested height
			width = int(math.Round(float64(height) * sourceAspect))
		}
	}

	// Floor to even integers
	width -= width % 2
	height -= height % 2

	return width, height
}
