// Package pipeline provides the core analysis pipeline for Code Clarified.
//
// This package implements the complete parse → extract → build → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Python source text → syntax tree
//  2. Extract: syntax tree → per-function flow structure
//  3. Build: flow structure → flowchart graph model
//  4. Render: graph model → DOT text and output artifacts (PNG, SVG, JSON)
//
// An optional summarize step runs after rendering. Its failures are
// non-fatal: the result carries the rendered artifacts either way.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, summarizer, logger)
//	opts := pipeline.Options{
//	    Source:  pythonSource,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/flow"
	"github.com/yashsidana/code-clarified/pkg/flowgraph"
)

// =============================================================================
// Defaults - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output artifacts.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// DefaultFormats is used when Options.Formats is empty.
var DefaultFormats = []string{FormatPNG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is the Python source text to analyze.
	Source string `json:"source"`

	// Formats selects the output artifacts. Defaults to DefaultFormats.
	Formats []string `json:"formats,omitempty"`

	// Summarize requests an AI explanation of the source.
	Summarize bool `json:"summarize,omitempty"`

	// Refresh bypasses all caches and recomputes every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Structure is the extracted per-function flow structure.
	Structure *flow.Structure

	// Graph is the flowchart graph model built from Structure.
	Graph flowgraph.Graph

	// DOT is the Graphviz diagram description.
	DOT string

	// SourceHash is the content hash of the analyzed source.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Summary is the AI explanation, empty unless Options.Summarize was set
	// and the summarizer succeeded.
	Summary string

	// SummaryErr records a summarizer failure. The rest of the result is
	// still valid when it is non-nil.
	SummaryErr error

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FunctionCount  int
	RecoveredExprs int
	ParseTime      time.Duration
	BuildTime      time.Duration
	RenderTime     time.Duration
	SummaryTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	StructureHit bool // Whether the flow structure came from cache
	ArtifactHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateSource(o.Source); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
