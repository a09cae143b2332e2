// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/gifcast/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveScheduleJSON does nothing.
func (s *Sink) SaveScheduleJSON(data []byte) error {
	return nil
}

// SaveCapturedFrame does nothing.
func (s *Sink) SaveCapturedFrame(index int, img image.Image) error {
	return nil
}

// SaveComposedFrame does nothing.
func (s *Sink) SaveComposedFrame(index int, img image.Image) error {
	return nil
}

// SaveResultJSON does nothing.
func (s *Sink) SaveResultJSON(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
