// Package main provides the CLI entry point for gifcast.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/gifcast/pkg/adapters/chromevideo"
	"github.com/user/gifcast/pkg/adapters/filesink"
	"github.com/user/gifcast/pkg/adapters/ggrenderer"
	"github.com/user/gifcast/pkg/adapters/logger"
	"github.com/user/gifcast/pkg/adapters/nullsink"
	"github.com/user/gifcast/pkg/adapters/osfilesystem"
	"github.com/user/gifcast/pkg/adapters/smartgif"
	"github.com/user/gifcast/pkg/config"
	"github.com/user/gifcast/pkg/orchestrator"
	"github.com/user/gifcast/pkg/ports"
	"github.com/user/gifcast/pkg/progress"
	"github.com/user/gifcast/pkg/stages/capture"
	"github.com/user/gifcast/pkg/stages/composite"
	"github.com/user/gifcast/pkg/stages/encode"
	"github.com/user/gifcast/pkg/stages/schedule"
	"github.com/user/gifcast/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:      "gifcast",
		Usage:     l10n.T("Capture a segment of a web video as an animated GIF"),
		Version:   version,
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output GIF file path (required)")},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "selector", Usage: l10n.T("CSS selector for the video element")},
			&cli.Float64Flag{Name: "start", Aliases: []string{"s"}, Usage: l10n.T("Segment start in seconds")},
			&cli.Float64Flag{Name: "end", Aliases: []string{"e"}, Usage: l10n.T("Segment end in seconds")},
			&cli.Float64Flag{Name: "fps", Usage: l10n.T("Frames per second")},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Output width (default: 480)")},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Output height (default: 270)")},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("GIF quality (1-100)")},
			&cli.IntFlag{Name: "loop", Usage: l10n.T("Loop count (0 = forever)")},
			&cli.StringSliceFlag{Name: "overlay", Usage: l10n.T("Text overlay, TEXT@X,Y in percent (repeatable)")},
			&cli.StringFlag{Name: "engine", Usage: l10n.T("Force GIF engine (std-gif, median-cut-gif)")},
			&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable")},
			&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode")},
			&cli.BoolFlag{Name: "ignore-https-errors", Usage: l10n.T("Ignore HTTPS certificate errors")},
			&cli.StringFlag{Name: "proxy-server", Usage: l10n.T("HTTP proxy server (e.g., http://proxy:8080)")},
			&cli.StringFlag{Name: "summary", Usage: l10n.T("Output session summary to file (Markdown format)")},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
			&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	if cfg.URL == "" {
		return cli.Exit(l10n.T("URL argument is required"), 2)
	}
	if cfg.OutputPath == "" {
		return cli.Exit(l10n.T("Output path is required (-o)"), 2)
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	encoder, engineInfo, err := smartgif.New(cfg.Quality, smartgif.Options{
		ForceEngine: smartgif.Engine(cfg.Engine),
		Logger:      log,
	})
	if err != nil {
		return err
	}
	log.Debug("GIF engine: %s", engineInfo.Engine)

	source := chromevideo.New(log)
	log.Info("Attaching to %s", cfg.URL)
	if err := source.Attach(ctx, cfg.ToSourceOptions()); err != nil {
		return err
	}
	defer source.Close()

	reporter := progress.New(newLogProgressSink(log), log, progress.DefaultOptions())

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	timing := capture.DefaultTiming()
	orch := orchestrator.New(
		schedule.NewStage(),
		capture.New(source, reporter, sink, log, timing),
		capture.NewFallback(source, sink, log, timing),
		composite.NewStage(renderer, sink, log, workers),
		encode.NewStage(encoder, log),
		source,
		reporter,
		fs,
		sink,
		log,
	)

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig())
	if err != nil {
		return err
	}

	log.Info("Output saved to %s", cfg.OutputPath)

	if path := c.String("summary"); path != "" {
		if err := writeSummary(path, cfg, result, fs); err != nil {
			log.Warn("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", path)
		}
	}

	return nil
}

// buildConfig merges the optional YAML config file with CLI flag overrides.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.Args().Present() {
		cfg.URL = c.Args().First()
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("selector") {
		cfg.Selector = c.String("selector")
	}
	if c.IsSet("start") {
		cfg.StartTime = c.Float64("start")
	}
	if c.IsSet("end") {
		cfg.EndTime = c.Float64("end")
	}
	if c.IsSet("fps") {
		cfg.FrameRate = c.Float64("fps")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("loop") {
		cfg.Loop = c.Int("loop")
	}
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.Bool("no-headless") {
		cfg.Headless = false
	}
	if c.Bool("ignore-https-errors") {
		cfg.IgnoreHTTPSErrors = true
	}
	if c.IsSet("proxy-server") {
		cfg.ProxyServer = c.String("proxy-server")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}

	for _, spec := range c.StringSlice("overlay") {
		overlay, err := parseOverlay(spec)
		if err != nil {
			return cfg, err
		}
		cfg.Overlays = append(cfg.Overlays, overlay)
	}

	return cfg, nil
}

func writeSummary(path string, cfg config.Config, result orchestrator.RunResult, fs ports.FileSystem) error {
	summary := summarizer.NewBuilder().
		WithSource(cfg.URL, cfg.Selector).
		WithSegment(cfg.StartTime, cfg.EndTime, cfg.FrameRate).
		WithCapture(summarizer.CaptureInfo{
			FrameCount:          result.Metadata.FrameCount,
			Method:              result.Method,
			DuplicatesRecovered: result.DuplicatesRecovered,
			ActualFrameRate:     result.Metadata.ActualFrameRate,
		}).
		WithOutput(summarizer.OutputInfo{
			Path:       result.OutputPath,
			Width:      result.Metadata.Width,
			Height:     result.Metadata.Height,
			DurationMs: result.Metadata.DurationMs,
			FileSize:   result.Metadata.FileSize,
			Encoder:    result.Metadata.Encoder,
			Quality:    cfg.Quality,
			Loop:       cfg.Loop,
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}
