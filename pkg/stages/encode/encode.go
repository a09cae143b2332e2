// Package encode implements the GIF encoding stage.
package encode

import (
	"context"
	"math"
	"time"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// Stage feeds captured frames into a GIF encoding engine with uniform
// per-frame delays derived from the requested frame rate.
type Stage struct {
	encoder ports.GifEncoder
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.GifEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute encodes all frames into a single animated GIF. Engine failures are
// wrapped in an EncodingError naming the engine.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodingResult, error) {
	if len(input.Frames) == 0 {
		return pipeline.EncodingResult{}, &pipeline.InvalidRequestError{Reason: "no frames to encode"}
	}
	if input.FrameRate <= 0 {
		return pipeline.EncodingResult{}, &pipeline.InvalidRequestError{Reason: "frame rate must be positive"}
	}

	delayMs := int(math.Round(1000 / input.FrameRate))
	s.logger.Debug("Encoding %d frames at %dx%d, delay %dms, quality %d",
		len(input.Frames), input.Width, input.Height, delayMs, input.Quality)

	started := time.Now()

	opts := ports.GifOptions{Quality: input.Quality, Loop: input.Loop}
	if err := s.encoder.Begin(input.Width, input.Height, opts); err != nil {
		return pipeline.EncodingResult{}, &pipeline.EncodingError{Engine: s.encoder.Name(), Err: err}
	}

	for _, frame := range input.Frames {
		select {
		case <-ctx.Done():
			return pipeline.EncodingResult{}, ctx.Err()
		default:
		}

		if frame.Pixels == nil {
			return pipeline.EncodingResult{}, pipeline.ErrSurfaceUnavailable
		}
		if err := s.encoder.AddFrame(frame.Pixels, delayMs); err != nil {
			return pipeline.EncodingResult{}, &pipeline.EncodingError{Engine: s.encoder.Name(), Err: err}
		}
	}

	data, err := s.encoder.End()
	if err != nil {
		return pipeline.EncodingResult{}, &pipeline.EncodingError{Engine: s.encoder.Name(), Err: err}
	}

	elapsed := time.Since(started)
	s.logger.Debug("Encoded %d bytes in %v", len(data), elapsed)

	return pipeline.EncodingResult{
		Data: data,
		Metadata: pipeline.ResultMetadata{
			FileSize:        int64(len(data)),
			DurationMs:      len(input.Frames) * delayMs,
			FrameCount:      len(input.Frames),
			Width:           input.Width,
			Height:          input.Height,
			Encoder:         s.encoder.Name(),
			ActualFrameRate: input.FrameRate,
			EncodingTimeMs:  elapsed.Milliseconds(),
		},
	}, nil
}
