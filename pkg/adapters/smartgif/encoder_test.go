package smartgif

import (
	"errors"
	"testing"
)

func TestNew_QualitySelection(t *testing.T) {
	cases := []struct {
		quality int
		engine  Engine
	}{
		{1, EngineStd},
		{49, EngineStd},
		{50, EngineMedianCut},
		{100, EngineMedianCut},
	}
	for _, tc := range cases {
		enc, info, err := New(tc.quality, Options{})
		if err != nil {
			t.Fatalf("quality %d: %v", tc.quality, err)
		}
		if info.Engine != tc.engine {
			t.Errorf("quality %d: engine %s, expected %s", tc.quality, info.Engine, tc.engine)
		}
		if enc.Name() != string(tc.engine) {
			t.Errorf("quality %d: encoder name %q does not match engine %s", tc.quality, enc.Name(), info.Engine)
		}
	}
}

func TestNew_ForceEngine(t *testing.T) {
	_, info, err := New(100, Options{ForceEngine: EngineStd})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Engine != EngineStd {
		t.Errorf("forced engine ignored, got %s", info.Engine)
	}
	if info.RequestedEngine != EngineStd {
		t.Errorf("requested engine not recorded: %s", info.RequestedEngine)
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	_, _, err := New(50, Options{ForceEngine: Engine("webp")})
	if !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("expected ErrUnknownEngine, got %v", err)
	}
}
