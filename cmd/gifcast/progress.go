package main

import (
	"github.com/user/gifcast/pkg/ports"
)

// logProgressSink bridges progress events onto the logger. Buffering details
// are attached to capture-stage events only.
type logProgressSink struct {
	logger ports.Logger
}

func newLogProgressSink(logger ports.Logger) *logProgressSink {
	return &logProgressSink{logger: logger.WithComponent("progress")}
}

func (s *logProgressSink) Publish(info ports.StageProgressInfo) {
	if bs := info.BufferingStatus; bs != nil {
		s.logger.Info("[%d/%d] %s %d/%d frames (%.0f%%)",
			info.StageNumber, info.TotalStages, info.StageName,
			bs.CurrentFrame, bs.TotalFrames, info.Progress)
		return
	}
	s.logger.Info("[%d/%d] %s (%.0f%%)",
		info.StageNumber, info.TotalStages, info.Message, info.Progress)
}

// Ensure logProgressSink implements ports.ProgressSink
var _ ports.ProgressSink = (*logProgressSink)(nil)
