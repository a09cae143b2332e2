// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/gifcast/pkg/ports"
)

// Sink saves diagnostic output to files under a base directory.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveScheduleJSON saves the computed frame schedule as JSON.
func (s *Sink) SaveScheduleJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "schedule.json")
	return s.fs.WriteFile(path, data)
}

// SaveCapturedFrame saves a frame as captured from the source.
func (s *Sink) SaveCapturedFrame(index int, img image.Image) error {
	return s.saveFrame("captured", index, img)
}

// SaveComposedFrame saves a frame after overlay compositing.
func (s *Sink) SaveComposedFrame(index int, img image.Image) error {
	return s.saveFrame("composed", index, img)
}

// SaveResultJSON saves the session result metadata as JSON.
func (s *Sink) SaveResultJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "result.json")
	return s.fs.WriteFile(path, data)
}

func (s *Sink) saveFrame(kind string, index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames", kind)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", kind, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
