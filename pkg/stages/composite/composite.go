// Package composite implements the text overlay compositing stage.
package composite

import (
	"context"
	"fmt"
	"image/color"
	"runtime"
	"sync"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// Default stroke applied when an overlay specifies none: a semi-transparent
// black outline of width 2 keeps text readable on any footage.
var defaultStrokeColor = color.RGBA{R: 0, G: 0, B: 0, A: 128}

const defaultStrokeWidth = 2.0

// Stage draws text overlays onto captured frames. Frames are mutated in
// place; the schedule and other frames are never touched.
type Stage struct {
	renderer   ports.Renderer
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new composite stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		renderer:   renderer,
		sink:       sink,
		logger:     logger.WithComponent("composite"),
		numWorkers: numWorkers,
	}
}

// Execute composes all frames. Frames are independent of each other, so the
// work is spread over a worker pool; order is preserved because each worker
// mutates its own frame's buffer in place.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	if len(input.Overlays) == 0 || len(input.Frames) == 0 {
		return pipeline.CompositeResult{Frames: input.Frames}, nil
	}

	s.logger.Debug("Compositing %d overlays onto %d frames with %d workers",
		len(input.Overlays), len(input.Frames), s.numWorkers)

	jobs := make(chan int, len(input.Frames))
	errChan := make(chan error, s.numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, errChan)
	}

	for i := range input.Frames {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return pipeline.CompositeResult{}, err
	}

	if s.sink.Enabled() {
		for i, frame := range input.Frames {
			s.sink.SaveComposedFrame(i, frame.Pixels)
		}
	}

	s.logger.Debug("Composition completed")
	return pipeline.CompositeResult{Frames: input.Frames}, nil
}

// worker draws overlays onto frames taken from the jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.CompositeInput,
	jobs <-chan int,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			select {
			case errChan <- ctx.Err():
			default:
			}
			return
		default:
		}

		if err := s.composeFrame(input.Frames[idx], input.Overlays); err != nil {
			select {
			case errChan <- fmt.Errorf("compose frame %d: %w", idx, err):
			default:
			}
			return
		}
	}
}

// composeFrame draws every overlay, in input order, onto one frame.
func (s *Stage) composeFrame(frame pipeline.CapturedFrame, overlays []pipeline.TextOverlay) error {
	if frame.Pixels == nil {
		return pipeline.ErrSurfaceUnavailable
	}

	canvas, err := s.renderer.CreateCanvas(frame.Pixels)
	if err != nil {
		return err
	}

	width := float64(frame.Pixels.Rect.Dx())
	height := float64(frame.Pixels.Rect.Dy())

	for _, overlay := range overlays {
		x := overlay.XPercent / 100 * width
		y := overlay.YPercent / 100 * height

		style := ports.TextStyle{
			FontSize: overlay.FontSize,
			FontPath: overlay.FontPath,
			Color:    overlay.Color,
		}
		if style.Color == nil {
			style.Color = color.White
		}
		if style.FontSize <= 0 {
			style.FontSize = 16
		}

		stroke := overlay.StrokeColor
		if stroke == nil {
			stroke = defaultStrokeColor
		}
		strokeWidth := overlay.StrokeWidth
		if strokeWidth <= 0 {
			strokeWidth = defaultStrokeWidth
		}

		canvas.DrawTextStroked(overlay.Text, x, y, style, stroke, strokeWidth)
	}

	canvas.Flush()
	return nil
}
