// Package capture implements the frame capture stages: the primary
// seek/verify loop with duplicate recovery, and the bounded-latency fallback
// pass.
package capture

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
	"github.com/user/gifcast/pkg/progress"
)

// Stage is the primary capture path. It drives the source to each scheduled
// timestamp, verifies readiness, detects stuck frames and attempts one
// recovery re-seek per duplicate.
type Stage struct {
	source   ports.VideoSource
	detector *Detector
	reporter *progress.Reporter
	sink     ports.DebugSink
	logger   ports.Logger
	timing   Timing
}

// New creates the primary capture stage.
func New(source ports.VideoSource, reporter *progress.Reporter, sink ports.DebugSink, logger ports.Logger, timing Timing) *Stage {
	return &Stage{
		source:   source,
		detector: NewDetector(),
		reporter: reporter,
		sink:     sink,
		logger:   logger.WithComponent("capture"),
		timing:   timing,
	}
}

// Execute captures all scheduled frames in order. Frames are appended
// strictly in schedule order; no two iterations overlap. The context is
// checked between iterations only: a seek/poll cycle that has begun runs to
// completion before being abandoned.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{
		Frames: make([]pipeline.CapturedFrame, 0, input.Schedule.FrameCount),
		Method: pipeline.MethodSeekAndVerify,
	}

	surfaces, err := newSurfacePair(input.Schedule.OutputWidth, input.Schedule.OutputHeight)
	if err != nil {
		return result, err
	}

	if err := s.source.Pause(); err != nil {
		return result, err
	}

	seek := &seekController{source: s.source, logger: s.logger, timing: s.timing}
	bound := DuplicateBound(input.Request.FrameRate)
	duplicates := 0

	s.logger.Debug("Capturing %d frames, duplicate bound %d", input.Schedule.FrameCount, bound)

	for i := 0; i < input.Schedule.FrameCount; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		frameStart := time.Now()
		target := input.Schedule.TargetTimestamp(input.Request.StartTime, i)

		actual, err := seek.seekTo(target)
		if err != nil {
			return result, err
		}

		if err := s.source.CaptureFrame(surfaces.current); err != nil {
			return result, err
		}

		isDuplicate := false
		if len(result.Frames) > 0 {
			previous := result.Frames[len(result.Frames)-1].Pixels
			if s.detector.IsDuplicate(previous, surfaces.current) {
				isDuplicate = true
				duplicates++
				if duplicates >= bound {
					s.logger.Error("Video stuck: %d consecutive identical frames", duplicates)
					return result, &pipeline.StuckVideoError{Duplicates: duplicates}
				}

				if s.tryRecovery(target, previous, surfaces) {
					isDuplicate = false
					duplicates = 0
					result.DuplicatesRecovered++
					if t, err := s.source.CurrentTime(); err == nil {
						actual = t
					}
				}
			} else {
				duplicates = 0
			}
		}

		frame := pipeline.CapturedFrame{
			Index:           i,
			TargetTimestamp: target,
			ActualTimestamp: actual,
			Pixels:          copyPixels(surfaces.current),
			IsDuplicate:     isDuplicate,
		}
		result.Frames = append(result.Frames, frame)

		if s.sink.Enabled() {
			s.sink.SaveCapturedFrame(i, frame.Pixels)
		}

		s.reporter.FrameCaptured(i+1, input.Schedule.FrameCount,
			time.Since(frameStart), s.bufferedPercentage(input.Request))
	}

	s.logger.Debug("Captured %d frames, %d recovered from duplicates",
		len(result.Frames), result.DuplicatesRecovered)

	return result, nil
}

// tryRecovery attempts exactly one recovery re-seek for a duplicate frame:
// nudge the target forward by a tiny epsilon, settle, recapture into the
// recovery surface and re-check. Returns true when the recovery frame is
// distinct and has been promoted to the current surface.
func (s *Stage) tryRecovery(target float64, previous *image.RGBA, surfaces *surfacePair) bool {
	pos, err := s.source.CurrentTime()
	if err != nil {
		return false
	}
	// Recovery only makes sense when the source did not land on the target.
	if math.Abs(pos-target) <= s.timing.PositionTolerance {
		return false
	}

	if err := s.source.SetCurrentTime(target + s.timing.RecoveryNudge); err != nil {
		return false
	}
	time.Sleep(s.timing.SettleDelay)

	if err := s.source.CaptureFrame(surfaces.recovery); err != nil {
		return false
	}
	if s.detector.IsDuplicate(previous, surfaces.recovery) {
		return false
	}

	surfaces.promoteRecovery()
	s.logger.Debug("Recovered distinct frame after duplicate at %.3fs", target)
	return true
}

// bufferedPercentage reports how much of the requested segment the source
// has buffered, 0-100. Errors degrade to 0; this is display data only.
func (s *Stage) bufferedPercentage(req pipeline.CaptureRequest) float64 {
	ranges, err := s.source.BufferedRanges()
	if err != nil {
		return 0
	}
	duration := req.Duration()
	if duration <= 0 {
		return 0
	}
	covered := 0.0
	for _, r := range ranges {
		start := math.Max(r.Start, req.StartTime)
		end := math.Min(r.End, req.EndTime)
		if end > start {
			covered += end - start
		}
	}
	pct := covered / duration * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}
