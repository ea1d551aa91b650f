package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/yashsidana/code-clarified/pkg/cache"
	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/flowgraph"
)

const sampleSource = `
def compare(a, b):
    if a > b:
        pass
    return a
`

type stubSummarizer struct {
	text string
	err  error
}

func (s *stubSummarizer) Summarize(ctx context.Context, source string, refresh bool) (string, error) {
	return s.text, s.err
}

func newTestRunner(t *testing.T, summarizer Summarizer) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(c, summarizer, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t, nil)

	result, err := r.Execute(context.Background(), Options{
		Source:  sampleSource,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want 1", result.Stats.FunctionCount)
	}
	if !strings.Contains(result.DOT, `subgraph "cluster_func_compare"`) {
		t.Errorf("DOT missing function cluster:\n%s", result.DOT)
	}
	if string(result.Artifacts[FormatDOT]) != result.DOT {
		t.Error("dot artifact differs from result.DOT")
	}

	g, err := flowgraph.Unmarshal(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("json artifact has %d nodes, want 4", len(g.Nodes))
	}

	if result.Summary != "" || result.SummaryErr != nil {
		t.Error("summary produced without being requested")
	}
	if result.SourceHash != cache.Hash([]byte(sampleSource)) {
		t.Error("SourceHash does not match the source")
	}
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"EmptySource", Options{Source: ""}, errors.ErrCodeInvalidInput},
		{"SyntaxError", Options{Source: "def broken(:", Formats: []string{FormatDOT}}, errors.ErrCodeParseFailed},
		{"UnknownFormat", Options{Source: sampleSource, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	r := newTestRunner(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %v, want %v (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestExecuteNoFunctions(t *testing.T) {
	r := newTestRunner(t, nil)

	result, err := r.Execute(context.Background(), Options{
		Source:  "x = 1\ny = x + 2\n",
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Stats.FunctionCount != 0 {
		t.Errorf("FunctionCount = %d, want 0", result.Stats.FunctionCount)
	}
	if !strings.Contains(result.DOT, "No functions found to map.") {
		t.Errorf("DOT missing empty placeholder:\n%s", result.DOT)
	}
}

func TestExecuteStructureCache(t *testing.T) {
	r := newTestRunner(t, nil)
	opts := Options{Source: sampleSource, Formats: []string{FormatDOT}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo.StructureHit {
		t.Error("first run reported a structure cache hit")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.StructureHit {
		t.Error("second run missed the structure cache")
	}
	if second.DOT != first.DOT {
		t.Error("cached run produced different DOT output")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if third.CacheInfo.StructureHit {
		t.Error("refresh run reported a structure cache hit")
	}
}

func TestExecuteSummary(t *testing.T) {
	r := newTestRunner(t, &stubSummarizer{text: "This code compares two numbers."})

	result, err := r.Execute(context.Background(), Options{
		Source:    sampleSource,
		Formats:   []string{FormatDOT},
		Summarize: true,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Summary != "This code compares two numbers." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if result.SummaryErr != nil {
		t.Errorf("SummaryErr = %v", result.SummaryErr)
	}
}

func TestExecuteSummarizerFailureIsPartial(t *testing.T) {
	r := newTestRunner(t, &stubSummarizer{err: errors.New(errors.ErrCodeNetwork, "gemini unreachable")})

	result, err := r.Execute(context.Background(), Options{
		Source:    sampleSource,
		Formats:   []string{FormatDOT},
		Summarize: true,
	})
	if err != nil {
		t.Fatalf("Execute() must not fail on summarizer errors, got: %v", err)
	}
	if result.SummaryErr == nil {
		t.Error("SummaryErr not recorded")
	}
	if len(result.Artifacts[FormatDOT]) == 0 {
		t.Error("artifacts missing from partial result")
	}
}

func TestExecuteNoSummarizerConfigured(t *testing.T) {
	r := newTestRunner(t, nil)

	result, err := r.Execute(context.Background(), Options{
		Source:    sampleSource,
		Formats:   []string{FormatDOT},
		Summarize: true,
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if errors.GetCode(result.SummaryErr) != errors.ErrCodeMissingCredential {
		t.Errorf("SummaryErr code = %v, want MISSING_CREDENTIAL", errors.GetCode(result.SummaryErr))
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{FormatPNG, FormatSVG, FormatDOT, FormatJSON} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("ValidateFormat(pdf) accepted an unsupported format")
	}
}
