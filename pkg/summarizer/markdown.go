package summarizer

import (
	"fmt"
	"strings"
)

// Translator converts a display string to the user's language.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the translation function for display strings.
func WithTranslator(t Translator) Option {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion includes the tool version in the footer.
func WithVersion(version string) Option {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Capture Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "- %s: %s\n", t("URL"), summary.Source.URL)
	fmt.Fprintf(&b, "- %s: `%s`\n", t("Selector"), summary.Source.Selector)
	fmt.Fprintf(&b, "- %s: %.2fs - %.2fs @ %.1f fps\n\n",
		t("Segment"), summary.Segment.StartTime, summary.Segment.EndTime, summary.Segment.FrameRate)

	fmt.Fprintf(&b, "## %s\n\n", t("Capture"))
	fmt.Fprintf(&b, "- %s: %d\n", t("Frames"), summary.Capture.FrameCount)
	fmt.Fprintf(&b, "- %s: %s\n", t("Method"), summary.Capture.Method)
	fmt.Fprintf(&b, "- %s: %d\n", t("Duplicates Recovered"), summary.Capture.DuplicatesRecovered)
	if summary.Capture.ActualFrameRate > 0 {
		fmt.Fprintf(&b, "- %s: %.2f fps\n", t("Actual Frame Rate"), summary.Capture.ActualFrameRate)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	if summary.Output.Path != "" {
		fmt.Fprintf(&b, "- %s: %s\n", t("File"), summary.Output.Path)
	}
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Dimensions"), summary.Output.Width, summary.Output.Height)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Duration"), summary.Output.DurationMs)
	fmt.Fprintf(&b, "- %s: %s\n", t("Size"), formatBytes(summary.Output.FileSize))
	fmt.Fprintf(&b, "- %s: %s\n", t("Encoder"), summary.Output.Encoder)
	fmt.Fprintf(&b, "- %s: %d\n", t("Quality"), summary.Output.Quality)
	fmt.Fprintf(&b, "- %s: %s\n", t("Loop"), formatLoop(summary.Output.Loop, t))

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\ngifcast %s\n", f.version)
	}

	return b.String()
}

func formatLoop(loop int, t Translator) string {
	if loop == 0 {
		return t("forever")
	}
	return fmt.Sprintf("%d", loop)
}

// formatBytes formats a byte count with binary units.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
