package ports

// StageProgressInfo describes the pipeline's current stage and progress.
// It is delivered to the ProgressSink on stage transitions, message cycles
// and (throttled) frame capture events.
type StageProgressInfo struct {
	Stage           string           // Stage identifier (capturing, analyzing, encoding, finalizing, completed, error)
	StageNumber     int              // 1-based stage number
	TotalStages     int              // Always 4
	StageName       string           // Human-readable stage name
	Message         string           // Current cycled status message
	Progress        float64          // Overall percent 0-100, non-decreasing within a session
	BufferingStatus *BufferingStatus // Present during capture emissions
}

// BufferingStatus is a snapshot of capture progress attached to
// StageProgressInfo during the capturing stage.
type BufferingStatus struct {
	CurrentFrame           int
	TotalFrames            int
	BufferedPercentage     float64
	EstimatedTimeRemaining float64 // Seconds, floored at zero
}

// ProgressSink receives progress events from the pipeline. Delivery is
// synchronous and best-effort: a sink that panics is recovered and ignored,
// and a slow sink must not be able to block the capture loop for long.
type ProgressSink interface {
	Publish(info StageProgressInfo)
}

// ProgressSinkFunc is a function adapter for the ProgressSink interface.
type ProgressSinkFunc func(info StageProgressInfo)

// Publish implements ProgressSink.
func (f ProgressSinkFunc) Publish(info StageProgressInfo) {
	f(info)
}
