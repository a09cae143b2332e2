// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
	"github.com/user/gifcast/pkg/progress"
)

// Config contains all configuration for one capture session.
type Config struct {
	// Segment and output
	Request    pipeline.CaptureRequest
	OutputPath string // When set, the GIF blob is written here

	// CaptureDeadline overrides the computed primary-path deadline.
	// Zero selects max(60s, frameCount*500ms + 30s).
	CaptureDeadline time.Duration
}

// RunResult summarizes a completed session.
type RunResult struct {
	Schedule            pipeline.FrameSchedule
	Method              string
	DuplicatesRecovered int
	Metadata            pipeline.ResultMetadata
	Data                []byte
	OutputPath          string
}

// Orchestrator coordinates the execution of all pipeline stages. Only one
// session may be active at a time; a second request is rejected immediately
// without touching the active one. The injected reporter is reset at the
// start of every run, so sequential sessions each report from idle.
type Orchestrator struct {
	scheduleStage  pipeline.Stage[pipeline.ScheduleInput, pipeline.FrameSchedule]
	captureStage   pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	fallbackStage  pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	encodeStage    pipeline.Stage[pipeline.EncodeInput, pipeline.EncodingResult]
	source         ports.VideoSource
	reporter       *progress.Reporter
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger

	slot chan struct{}
}

// New creates a new Orchestrator.
func New(
	scheduleStage pipeline.Stage[pipeline.ScheduleInput, pipeline.FrameSchedule],
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	fallbackStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	compositeStage pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodingResult],
	source ports.VideoSource,
	reporter *progress.Reporter,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		scheduleStage:  scheduleStage,
		captureStage:   captureStage,
		fallbackStage:  fallbackStage,
		compositeStage: compositeStage,
		encodeStage:    encodeStage,
		source:         source,
		reporter:       reporter,
		fs:             fs,
		sink:           sink,
		logger:         logger,
		slot:           make(chan struct{}, 1),
	}
}

// computeDeadline bounds the primary capture path. Slow sources get more
// headroom per frame but the whole path always terminates.
func computeDeadline(frameCount int) time.Duration {
	d := time.Duration(frameCount)*500*time.Millisecond + 30*time.Second
	if d < 60*time.Second {
		d = 60 * time.Second
	}
	return d
}

// Run executes the complete pipeline for one capture session.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	select {
	case o.slot <- struct{}{}:
	default:
		return RunResult{}, pipeline.ErrConcurrentSession
	}
	defer func() { <-o.slot }()

	// The reporter's terminal state belongs to the previous session; each
	// run starts from idle.
	o.reporter.Reset()
	defer o.reporter.Stop()

	result, err := o.run(ctx, config)
	if err != nil {
		o.reporter.Fail(err)
		return RunResult{}, err
	}
	o.reporter.Complete()
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Starting capture session")

	// Snapshot the source's playback state; it is restored on every exit
	// path, success or failure.
	state, err := o.snapshotPlayback()
	if err != nil {
		return RunResult{}, fmt.Errorf("read playback state: %w", err)
	}
	defer o.restorePlayback(state)

	// 1. Schedule
	srcWidth, srcHeight, err := o.source.IntrinsicSize()
	if err != nil {
		return RunResult{}, fmt.Errorf("source dimensions: %w", err)
	}
	sched, err := o.scheduleStage.Execute(ctx, pipeline.ScheduleInput{
		Request:      config.Request,
		SourceWidth:  srcWidth,
		SourceHeight: srcHeight,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("schedule stage: %w", err)
	}
	o.logger.Info("Schedule: %d frames at %dx%d, %.3fs apart",
		sched.FrameCount, sched.OutputWidth, sched.OutputHeight, sched.FrameInterval)

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(sched, "", "  "); err == nil {
			o.sink.SaveScheduleJSON(data)
		}
	}

	// 2. Capture, racing the primary path against its deadline
	captureInput := pipeline.CaptureInput{Request: config.Request, Schedule: sched}
	o.reporter.EnterStage(progress.StageCapturing)
	captured, err := o.captureWithFallback(ctx, config, captureInput)
	if err != nil {
		return RunResult{}, err
	}
	o.logger.Info("Captured %d frames via %s", len(captured.Frames), captured.Method)

	// 3. Compose overlays
	o.reporter.EnterStage(progress.StageAnalyzing)
	composed, err := o.compositeStage.Execute(ctx, pipeline.CompositeInput{
		Frames:   captured.Frames,
		Overlays: config.Request.Overlays,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("composite stage: %w", err)
	}

	// 4. Encode
	o.reporter.EnterStage(progress.StageEncoding)
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		Frames:    composed.Frames,
		Width:     sched.OutputWidth,
		Height:    sched.OutputHeight,
		Quality:   config.Request.Quality,
		FrameRate: config.Request.FrameRate,
		Loop:      config.Request.Loop,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}
	o.logger.Info("Encoded %d bytes with %s", len(encoded.Data), encoded.Metadata.Encoder)

	// 5. Finalize
	o.reporter.EnterStage(progress.StageFinalizing)

	encoded.Metadata.ExtractionMethod = captured.Method
	if captured.Method == pipeline.MethodInstantFallback {
		// The fallback takes whatever the source shows; report the rate
		// actually achieved over the segment rather than the requested one.
		if d := config.Request.Duration(); d > 0 {
			encoded.Metadata.ActualFrameRate = float64(len(captured.Frames)) / d
		}
	}

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(encoded.Metadata, "", "  "); err == nil {
			o.sink.SaveResultJSON(data)
		}
	}

	if config.OutputPath != "" {
		if err := o.fs.WriteFile(config.OutputPath, encoded.Data); err != nil {
			return RunResult{}, fmt.Errorf("write output: %w", err)
		}
		o.logger.Info("Wrote %s", config.OutputPath)
	}

	return RunResult{
		Schedule:            sched,
		Method:              captured.Method,
		DuplicatesRecovered: captured.DuplicatesRecovered,
		Metadata:            encoded.Metadata,
		Data:                encoded.Data,
		OutputPath:          config.OutputPath,
	}, nil
}

// captureWithFallback runs the primary capture path under its deadline and
// degrades to the fallback pass when the deadline is exceeded or the
// controller reports a seek timeout. Only a fallback failure surfaces.
func (o *Orchestrator) captureWithFallback(ctx context.Context, config Config, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	deadline := config.CaptureDeadline
	if deadline <= 0 {
		deadline = computeDeadline(input.Schedule.FrameCount)
	}

	started := time.Now()
	primaryCtx, cancel := context.WithTimeout(ctx, deadline)
	result, err := o.captureStage.Execute(primaryCtx, input)
	cancel()
	if err == nil {
		return result, nil
	}

	// The caller cancelling is not a reason to fall back.
	if ctx.Err() != nil {
		return pipeline.CaptureResult{}, ctx.Err()
	}

	var seekTimeout *pipeline.SeekTimeoutError
	if !errors.As(err, &seekTimeout) {
		if !errors.Is(err, context.DeadlineExceeded) {
			return pipeline.CaptureResult{}, fmt.Errorf("capture stage: %w", err)
		}
		seekTimeout = &pipeline.SeekTimeoutError{Elapsed: time.Since(started), Deadline: deadline}
	}

	o.logger.Warn("Primary capture missed its %s deadline, using fallback capture", deadline)

	fallbackCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()
	result, err = o.fallbackStage.Execute(fallbackCtx, input)
	if err != nil {
		return pipeline.CaptureResult{}, fmt.Errorf("fallback capture: %w (%w)", err, seekTimeout)
	}
	return result, nil
}

func (o *Orchestrator) snapshotPlayback() (pipeline.PlaybackState, error) {
	t, err := o.source.CurrentTime()
	if err != nil {
		return pipeline.PlaybackState{}, err
	}
	paused, err := o.source.Paused()
	if err != nil {
		return pipeline.PlaybackState{}, err
	}
	return pipeline.PlaybackState{CurrentTime: t, Paused: paused}, nil
}

// restorePlayback is best-effort: a dead source handle must not mask the
// session's own outcome.
func (o *Orchestrator) restorePlayback(state pipeline.PlaybackState) {
	if err := o.source.SetCurrentTime(state.CurrentTime); err != nil {
		o.logger.Warn("Failed to restore playback position: %s", err)
		return
	}
	if state.Paused {
		if err := o.source.Pause(); err != nil {
			o.logger.Warn("Failed to restore paused state: %s", err)
		}
		return
	}
	if err := o.source.Play(); err != nil {
		o.logger.Warn("Failed to resume playback: %s", err)
	}
}
