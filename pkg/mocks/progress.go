package mocks

import (
	"sync"

	"github.com/user/gifcast/pkg/ports"
)

// ProgressRecorder is a ProgressSink that records every published event.
type ProgressRecorder struct {
	mu     sync.Mutex
	events []ports.StageProgressInfo

	// PanicOn makes Publish panic when the stage matches, to test that the
	// pipeline swallows sink failures.
	PanicOn string
}

// NewProgressRecorder creates a new recorder.
func NewProgressRecorder() *ProgressRecorder {
	return &ProgressRecorder{}
}

func (r *ProgressRecorder) Publish(info ports.StageProgressInfo) {
	if r.PanicOn != "" && info.Stage == r.PanicOn {
		panic("progress sink failure")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, info)
}

// Events returns a copy of the recorded events.
func (r *ProgressRecorder) Events() []ports.StageProgressInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.StageProgressInfo, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event, or a zero value if none were recorded.
func (r *ProgressRecorder) Last() ports.StageProgressInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return ports.StageProgressInfo{}
	}
	return r.events[len(r.events)-1]
}

// Ensure ProgressRecorder implements ports.ProgressSink
var _ ports.ProgressSink = (*ProgressRecorder)(nil)
