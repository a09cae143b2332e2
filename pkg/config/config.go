// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/gifcast/pkg/orchestrator"
	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// Config represents the full configuration for gifcast.
type Config struct {
	// Input/Output
	URL        string `yaml:"url"`
	Selector   string `yaml:"selector"`
	OutputPath string `yaml:"output"`

	// Segment
	StartTime float64 `yaml:"start"`
	EndTime   float64 `yaml:"end"`
	FrameRate float64 `yaml:"fps"`

	// Output
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Quality int `yaml:"quality"`
	Loop    int `yaml:"loop"`

	// Overlays
	Overlays []OverlayConfig `yaml:"overlays"`

	// Browser
	ChromePath        string            `yaml:"chrome_path"`
	Headless          bool              `yaml:"headless"`
	Headers           map[string]string `yaml:"headers"`
	IgnoreHTTPSErrors bool              `yaml:"ignore_https_errors"`
	ProxyServer       string            `yaml:"proxy_server"`
	AttachTimeoutMs   int               `yaml:"attach_timeout_ms"`

	// Capture
	CaptureDeadlineMs int `yaml:"capture_deadline_ms"`

	// Composite
	Workers int `yaml:"workers"`

	// Encoding
	Engine string `yaml:"engine"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// OverlayConfig represents one text overlay.
type OverlayConfig struct {
	Text        string  `yaml:"text"`
	XPercent    float64 `yaml:"x_percent"`
	YPercent    float64 `yaml:"y_percent"`
	FontSize    float64 `yaml:"font_size"`
	FontPath    string  `yaml:"font_path"`
	Color       string  `yaml:"color"`
	StrokeColor string  `yaml:"stroke_color"`
	StrokeWidth float64 `yaml:"stroke_width"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Selector: "video",

		// Segment
		StartTime: 0,
		EndTime:   3,
		FrameRate: 10,

		// Output
		Width:   480,
		Height:  270,
		Quality: 75,
		Loop:    0,

		// Browser
		Headless:        true,
		AttachTimeoutMs: 15000,

		// Composite
		Workers: 4,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file, merged over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string like "#ff8800". Empty or malformed
// input yields nil so the pipeline's own defaults apply.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return nil
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return nil
	}

	parse := func(hi, lo byte) uint8 {
		return hexValue(hi)<<4 | hexValue(lo)
	}
	return color.RGBA{
		R: parse(hex[0], hex[1]),
		G: parse(hex[2], hex[3]),
		B: parse(hex[4], hex[5]),
		A: 255,
	}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToRequest converts the configured segment and output to a capture request.
func (c Config) ToRequest() pipeline.CaptureRequest {
	overlays := make([]pipeline.TextOverlay, 0, len(c.Overlays))
	for _, o := range c.Overlays {
		overlays = append(overlays, pipeline.TextOverlay{
			Text:        o.Text,
			XPercent:    o.XPercent,
			YPercent:    o.YPercent,
			FontSize:    o.FontSize,
			FontPath:    o.FontPath,
			Color:       ParseColor(o.Color),
			StrokeColor: ParseColor(o.StrokeColor),
			StrokeWidth: o.StrokeWidth,
		})
	}

	return pipeline.CaptureRequest{
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		FrameRate:    c.FrameRate,
		TargetWidth:  c.Width,
		TargetHeight: c.Height,
		Quality:      c.Quality,
		Loop:         c.Loop,
		Overlays:     overlays,
	}
}

// ToSourceOptions converts the browser settings to source attach options.
func (c Config) ToSourceOptions() ports.SourceOptions {
	return ports.SourceOptions{
		URL:               c.URL,
		Selector:          c.Selector,
		ChromePath:        c.ChromePath,
		Headless:          c.Headless,
		Headers:           c.Headers,
		IgnoreHTTPSErrors: c.IgnoreHTTPSErrors,
		ProxyServer:       c.ProxyServer,
		AttachTimeoutMs:   c.AttachTimeoutMs,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Request:         c.ToRequest(),
		OutputPath:      c.OutputPath,
		CaptureDeadline: time.Duration(c.CaptureDeadlineMs) * time.Millisecond,
	}
}
