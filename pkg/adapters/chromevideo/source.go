package chromevideo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"

	"github.com/user/gifcast/pkg/pipeline"
	"github.com/user/gifcast/pkg/ports"
)

// defaultAttachTimeoutMs bounds the wait for a usable video element.
const defaultAttachTimeoutMs = 15000

// Source implements ports.VideoSource by driving an HTML video element
// through chromedp. Every playback query and command is a JavaScript
// evaluation against the element; frame capture is a CDP element screenshot
// scaled into the caller's surface.
type Source struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	selector string
	logger   ports.Logger
}

// New creates a new Source.
func New(logger ports.Logger) *Source {
	return &Source{
		logger: logger.WithComponent("chromevideo"),
	}
}

// Attach launches the browser, navigates to the page and waits until the
// selected video element has metadata and intrinsic dimensions.
func (s *Source) Attach(ctx context.Context, opts ports.SourceOptions) error {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("autoplay-policy", "no-user-gesture-required"),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-gpu", true),
	}

	if opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: install Chrome/Chromium, set CHROME_PATH, or use --chrome-path")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	if opts.IgnoreHTTPSErrors {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}
	if opts.ProxyServer != "" {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("proxy-server", opts.ProxyServer))
	}

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	s.ctx, s.cancel = chromedp.NewContext(s.allocCtx)

	s.selector = opts.Selector
	if s.selector == "" {
		s.selector = "video"
	}

	if len(opts.Headers) > 0 {
		headers := make(map[string]interface{})
		for k, v := range opts.Headers {
			headers[k] = v
		}
		if err := chromedp.Run(s.ctx, network.Enable(), network.SetExtraHTTPHeaders(network.Headers(headers))); err != nil {
			return fmt.Errorf("set headers: %w", err)
		}
	}

	s.logger.Debug("Navigating to %s", opts.URL)
	if err := chromedp.Run(s.ctx, chromedp.Navigate(opts.URL)); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	timeoutMs := opts.AttachTimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = defaultAttachTimeoutMs
	}
	if err := s.waitForVideo(time.Duration(timeoutMs) * time.Millisecond); err != nil {
		return err
	}

	s.logger.Debug("Attached to %q", s.selector)
	return nil
}

// waitForVideo polls until the element exists, has metadata and reports
// non-zero intrinsic dimensions.
func (s *Source) waitForVideo(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	expr := fmt.Sprintf(`(function() {
		const v = document.querySelector(%q);
		return !!v && v.readyState >= 1 && v.videoWidth > 0;
	})()`, s.selector)

	for time.Now().Before(deadline) {
		var ready bool
		if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &ready)); err == nil && ready {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return pipeline.ErrSourceUnavailable
}

// element returns the JavaScript expression selecting the video element.
func (s *Source) element() string {
	return fmt.Sprintf("document.querySelector(%q)", s.selector)
}

func (s *Source) evalInto(expr string, out interface{}) error {
	if s.ctx == nil {
		return pipeline.ErrSourceUnavailable
	}
	return chromedp.Run(s.ctx, chromedp.Evaluate(expr, out))
}

// CurrentTime returns the current playback position in seconds.
func (s *Source) CurrentTime() (float64, error) {
	var t float64
	err := s.evalInto(s.element()+".currentTime", &t)
	return t, err
}

// SetCurrentTime requests a seek. The element decides when (and how
// precisely) the seek completes; callers poll CurrentTime and ReadyState.
func (s *Source) SetCurrentTime(seconds float64) error {
	return s.evalInto(fmt.Sprintf("%s.currentTime = %g", s.element(), seconds), nil)
}

// Pause pauses playback.
func (s *Source) Pause() error {
	return s.evalInto("void "+s.element()+".pause()", nil)
}

// Play resumes playback. The play() promise is intentionally discarded;
// autoplay rejections surface through Paused.
func (s *Source) Play() error {
	return s.evalInto(fmt.Sprintf("void %s.play().catch(function(){})", s.element()), nil)
}

// Paused reports whether playback is currently paused.
func (s *Source) Paused() (bool, error) {
	var paused bool
	err := s.evalInto(s.element()+".paused", &paused)
	return paused, err
}

// Duration returns the total duration of the video in seconds.
func (s *Source) Duration() (float64, error) {
	var d float64
	err := s.evalInto(s.element()+".duration", &d)
	return d, err
}

// IntrinsicSize returns the video's intrinsic pixel dimensions.
func (s *Source) IntrinsicSize() (int, int, error) {
	var size struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	expr := fmt.Sprintf(`(function() {
		const v = %s;
		return { width: v.videoWidth, height: v.videoHeight };
	})()`, s.element())
	if err := s.evalInto(expr, &size); err != nil {
		return 0, 0, err
	}
	return size.Width, size.Height, nil
}

// ReadyState returns the decoded-data level (HaveNothing..HaveEnoughData).
func (s *Source) ReadyState() (int, error) {
	var state int
	err := s.evalInto(s.element()+".readyState", &state)
	return state, err
}

// BufferedRanges returns the currently buffered time ranges.
func (s *Source) BufferedRanges() ([]ports.TimeRange, error) {
	var ranges []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	expr := fmt.Sprintf(`(function() {
		const v = %s;
		const out = [];
		for (let i = 0; i < v.buffered.length; i++) {
			out.push({ start: v.buffered.start(i), end: v.buffered.end(i) });
		}
		return out;
	})()`, s.element())
	if err := s.evalInto(expr, &ranges); err != nil {
		return nil, err
	}

	result := make([]ports.TimeRange, len(ranges))
	for i, r := range ranges {
		result[i] = ports.TimeRange{Start: r.Start, End: r.End}
	}
	return result, nil
}

// CaptureFrame screenshots the video element and scales it into dst.
func (s *Source) CaptureFrame(dst *image.RGBA) error {
	if s.ctx == nil {
		return pipeline.ErrSourceUnavailable
	}

	var buf []byte
	if err := chromedp.Run(s.ctx, chromedp.Screenshot(s.selector, &buf, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return nil
}

// Close releases the connection to the source and shuts the browser down.
func (s *Source) Close() error {
	if s.cancel != nil {
		s.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
