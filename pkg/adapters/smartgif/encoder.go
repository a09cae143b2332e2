// Package smartgif selects a GIF encoding engine based on the requested
// quality, with an explicit override.
package smartgif

import (
	"errors"

	"github.com/user/gifcast/pkg/adapters/gifenc"
	"github.com/user/gifcast/pkg/ports"
)

// Engine identifies a GIF encoding engine.
type Engine string

const (
	// EngineStd is the fixed-palette standard library engine.
	EngineStd Engine = "std-gif"
	// EngineMedianCut is the per-frame median-cut palette engine.
	EngineMedianCut Engine = "median-cut-gif"
)

// medianCutThreshold is the quality at which per-frame palette fitting
// becomes worth its cost.
const medianCutThreshold = 50

// Info contains information about the selected engine.
type Info struct {
	// Engine is the engine actually selected.
	Engine Engine
	// RequestedEngine is non-empty when the caller forced a specific engine.
	RequestedEngine Engine
	// Quality is the quality the selection was based on.
	Quality int
}

// Options configures engine selection.
type Options struct {
	// ForceEngine bypasses quality-based selection.
	ForceEngine Engine
	// Logger is used to log the selection.
	Logger ports.Logger
}

// ErrUnknownEngine is returned when ForceEngine names no known engine.
var ErrUnknownEngine = errors.New("smartgif: unknown engine")

// New creates a GIF encoder for the given quality.
//
// Selection:
//  1. ForceEngine, when set, wins.
//  2. Quality at or above 50 selects the median-cut engine.
//  3. Lower quality selects the fixed-palette standard engine.
func New(quality int, opts Options) (ports.GifEncoder, Info, error) {
	info := Info{
		RequestedEngine: opts.ForceEngine,
		Quality:         quality,
	}

	engine := opts.ForceEngine
	if engine == "" {
		if quality >= medianCutThreshold {
			engine = EngineMedianCut
		} else {
			engine = EngineStd
		}
	}

	var encoder ports.GifEncoder
	switch engine {
	case EngineStd:
		encoder = gifenc.NewStd()
	case EngineMedianCut:
		encoder = gifenc.NewQuant()
	default:
		return nil, Info{}, ErrUnknownEngine
	}

	info.Engine = engine
	if opts.Logger != nil {
		opts.Logger.Debug("Selected GIF engine %s for quality %d", engine, quality)
	}
	return encoder, info, nil
}
