package summarizer

import (
	"strings"
	"testing"

	"github.com/user/gifcast/pkg/mocks"
)

func TestWriter_WritesFormattedSummary(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("/reports/summary.md", sampleSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := fs.Files()["/reports/summary.md"]
	if !ok {
		t.Fatal("summary file not written")
	}
	if !strings.Contains(string(data), "# Capture Summary") {
		t.Error("written content is not the formatted summary")
	}
}
