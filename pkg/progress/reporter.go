// Package progress implements the stage-based progress state machine.
package progress

import (
	"sync"
	"time"

	"github.com/user/gifcast/pkg/ports"
)

// Stage identifiers delivered in StageProgressInfo.
const (
	StageCapturing  = "capturing"
	StageAnalyzing  = "analyzing"
	StageEncoding   = "encoding"
	StageFinalizing = "finalizing"
	StageCompleted  = "completed"
	StageError      = "error"
)

const totalStages = 4

// etaWindow is the number of recent per-frame durations averaged for the
// estimated time remaining.
const etaWindow = 5

// stageSpec describes one of the four ordered pipeline stages.
type stageSpec struct {
	id       string
	number   int
	name     string
	messages []string
}

var stageSpecs = []stageSpec{
	{
		id:     StageCapturing,
		number: 1,
		name:   "Capturing",
		messages: []string{
			"Capturing frames...",
			"Seeking through the video...",
			"Waiting for the video to buffer...",
		},
	},
	{
		id:     StageAnalyzing,
		number: 2,
		name:   "Analyzing",
		messages: []string{
			"Analyzing captured frames...",
			"Applying overlays...",
		},
	},
	{
		id:     StageEncoding,
		number: 3,
		name:   "Encoding",
		messages: []string{
			"Encoding animation...",
			"Optimizing colors...",
		},
	},
	{
		id:     StageFinalizing,
		number: 4,
		name:   "Finalizing",
		messages: []string{
			"Finalizing output...",
			"Almost done...",
		},
	},
}

// Options configures the reporter's timers.
type Options struct {
	// CyclePeriod is the interval between status message rotations.
	CyclePeriod time.Duration
	// Throttle is the minimum interval between frame-capture emissions.
	// The final frame is always flushed.
	Throttle time.Duration
}

// DefaultOptions returns the standard timer settings.
func DefaultOptions() Options {
	return Options{
		CyclePeriod: 3000 * time.Millisecond,
		Throttle:    500 * time.Millisecond,
	}
}

// Reporter is a finite state machine over the four pipeline stages with
// terminal completed/error states. It owns a message-cycling ticker that is
// torn down on every stage exit and on session teardown, and it guarantees
// that the overall percent it emits never decreases within a session.
type Reporter struct {
	sink   ports.ProgressSink
	logger ports.Logger
	opts   Options

	mu              sync.Mutex
	current         *stageSpec
	messageIndex    int
	cycleStop       chan struct{}
	lastEmit        time.Time
	lastPercent     float64
	captureFraction float64
	frameDurations  []time.Duration
	terminal        bool
}

// New creates a Reporter publishing to the given sink.
func New(sink ports.ProgressSink, logger ports.Logger, opts Options) *Reporter {
	if opts.CyclePeriod <= 0 {
		opts.CyclePeriod = DefaultOptions().CyclePeriod
	}
	if opts.Throttle <= 0 {
		opts.Throttle = DefaultOptions().Throttle
	}
	return &Reporter{
		sink:   sink,
		logger: logger.WithComponent("progress"),
		opts:   opts,
	}
}

// Reset returns the reporter to the idle state so a new session starts
// fresh: the terminal latch, the monotonic-percent floor and the frame
// duration window are cleared and any running message cycle is torn down.
func (r *Reporter) Reset() {
	r.mu.Lock()
	r.stopCycleLocked()
	r.current = nil
	r.messageIndex = 0
	r.lastEmit = time.Time{}
	r.lastPercent = 0
	r.captureFraction = 0
	r.frameDurations = nil
	r.terminal = false
	r.mu.Unlock()
}

// EnterStage transitions the reporter to the named stage, resets the message
// cycle and restarts the cycling ticker. Unknown ids and transitions after a
// terminal state are ignored.
func (r *Reporter) EnterStage(id string) {
	spec := findStage(id)
	if spec == nil {
		return
	}

	r.mu.Lock()
	if r.terminal {
		r.mu.Unlock()
		return
	}
	r.stopCycleLocked()
	r.current = spec
	r.messageIndex = 0
	r.captureFraction = 0
	r.lastEmit = time.Now()
	stop := make(chan struct{})
	r.cycleStop = stop
	info := r.buildInfoLocked(nil)
	r.mu.Unlock()

	r.logger.Debug("Stage %d/%d: %s", spec.number, totalStages, spec.name)
	r.publish(info)

	go r.cycleMessages(stop)
}

// FrameCaptured records one captured frame and emits a throttled progress
// event carrying a buffering snapshot. dur is the wall time the frame took.
func (r *Reporter) FrameCaptured(current, total int, dur time.Duration, bufferedPct float64) {
	r.mu.Lock()
	if r.terminal || r.current == nil || r.current.id != StageCapturing {
		r.mu.Unlock()
		return
	}

	r.frameDurations = append(r.frameDurations, dur)
	if len(r.frameDurations) > etaWindow {
		r.frameDurations = r.frameDurations[len(r.frameDurations)-etaWindow:]
	}

	if total > 0 {
		r.captureFraction = float64(current) / float64(total)
	}

	final := current >= total
	if !final && time.Since(r.lastEmit) < r.opts.Throttle {
		r.mu.Unlock()
		return
	}
	r.lastEmit = time.Now()

	status := &ports.BufferingStatus{
		CurrentFrame:           current,
		TotalFrames:            total,
		BufferedPercentage:     bufferedPct,
		EstimatedTimeRemaining: r.estimateRemainingLocked(total - current),
	}
	info := r.buildInfoLocked(status)
	r.mu.Unlock()

	r.publish(info)
}

// Complete moves the reporter to the terminal completed state and stops the
// message cycle.
func (r *Reporter) Complete() {
	r.finish(StageCompleted, "Done", 100)
}

// Fail moves the reporter to the terminal error state and stops the message
// cycle.
func (r *Reporter) Fail(err error) {
	msg := "Capture failed"
	if err != nil {
		msg = err.Error()
	}
	r.mu.Lock()
	percent := r.lastPercent
	r.mu.Unlock()
	r.finish(StageError, msg, percent)
}

// Stop tears down the message-cycling timer without emitting. Safe to call
// multiple times and after terminal states.
func (r *Reporter) Stop() {
	r.mu.Lock()
	r.stopCycleLocked()
	r.mu.Unlock()
}

func (r *Reporter) finish(id, message string, percent float64) {
	r.mu.Lock()
	if r.terminal {
		r.mu.Unlock()
		return
	}
	r.terminal = true
	r.stopCycleLocked()

	number := totalStages
	name := "Completed"
	if r.current != nil {
		number = r.current.number
	}
	if id == StageError {
		name = "Error"
	}
	if percent < r.lastPercent {
		percent = r.lastPercent
	}
	r.lastPercent = percent
	info := ports.StageProgressInfo{
		Stage:       id,
		StageNumber: number,
		TotalStages: totalStages,
		StageName:   name,
		Message:     message,
		Progress:    percent,
	}
	r.mu.Unlock()

	r.publish(info)
}

// cycleMessages advances through the stage's status strings on a fixed
// period, re-emitting a progress event on each tick while the stage is
// active.
func (r *Reporter) cycleMessages(stop chan struct{}) {
	ticker := time.NewTicker(r.opts.CyclePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.terminal || r.current == nil || r.cycleStop != stop {
				r.mu.Unlock()
				return
			}
			r.messageIndex = (r.messageIndex + 1) % len(r.current.messages)
			info := r.buildInfoLocked(nil)
			r.mu.Unlock()
			r.publish(info)
		}
	}
}

func (r *Reporter) stopCycleLocked() {
	if r.cycleStop != nil {
		close(r.cycleStop)
		r.cycleStop = nil
	}
}

// buildInfoLocked assembles a StageProgressInfo for the current stage and
// clamps the overall percent so it never decreases.
func (r *Reporter) buildInfoLocked(status *ports.BufferingStatus) ports.StageProgressInfo {
	spec := r.current
	percent := float64(spec.number-1) / totalStages * 100
	if spec.id == StageCapturing {
		percent += r.captureFraction * (100.0 / totalStages)
	}
	if percent < r.lastPercent {
		percent = r.lastPercent
	}
	r.lastPercent = percent

	return ports.StageProgressInfo{
		Stage:           spec.id,
		StageNumber:     spec.number,
		TotalStages:     totalStages,
		StageName:       spec.name,
		Message:         spec.messages[r.messageIndex],
		Progress:        percent,
		BufferingStatus: status,
	}
}

// estimateRemainingLocked derives the ETA in seconds from the moving average
// of recent per-frame capture durations.
func (r *Reporter) estimateRemainingLocked(remaining int) float64 {
	if remaining <= 0 || len(r.frameDurations) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range r.frameDurations {
		sum += d
	}
	avg := sum / time.Duration(len(r.frameDurations))
	eta := avg.Seconds() * float64(remaining)
	if eta < 0 {
		return 0
	}
	return eta
}

// publish delivers an event to the sink. The sink is best-effort: a panic
// inside it must not take down the pipeline.
func (r *Reporter) publish(info ports.StageProgressInfo) {
	if r.sink == nil {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Debug("Progress sink panicked: %v", p)
		}
	}()
	r.sink.Publish(info)
}

func findStage(id string) *stageSpec {
	for i := range stageSpecs {
		if stageSpecs[i].id == id {
			return &stageSpecs[i]
		}
	}
	return nil
}
