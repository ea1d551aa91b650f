package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yashsidana/code-clarified/pkg/cache"
	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/pipeline"
	"github.com/yashsidana/code-clarified/pkg/summarize"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "png", "svg", "dot", "json"
	summary bool     // request an AI explanation
	refresh bool     // bypass caches
	noCache bool     // disable caching entirely
}

// newAnalyzeCmd creates the analyze command for rendering flowcharts.
func newAnalyzeCmd() *cobra.Command {
	var formatsStr string
	var opts analyzeOpts

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Render a Python file as a control-flow diagram",
		Long:  `Analyze parses a Python file, extracts each function's decisions, loops, and returns, and renders the flowchart. Use "-" to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runAnalyze(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "include an AI explanation of the code")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches and recompute")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["png"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	return strings.Split(s, ",")
}

func runAnalyze(cmd *cobra.Command, input string, opts *analyzeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	source, err := readSource(input)
	if err != nil {
		return err
	}

	runner, err := buildRunner(cmd, opts.noCache, opts.summary)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spin *Spinner
	if opts.summary {
		spin = newSpinner(ctx, "Waiting for summarizer...")
		spin.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Source:    string(source),
		Formats:   opts.formats,
		Summarize: opts.summary,
		Refresh:   opts.refresh,
		Logger:    logger,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d functions", result.Stats.FunctionCount))

	if warn := result.Structure.RecoveryWarning(); warn != nil {
		printWarning("%s", errors.UserMessage(warn))
	}

	if err := writeArtifacts(result, input, opts); err != nil {
		return err
	}
	printStats(result.Stats.FunctionCount, totalSteps(result), result.CacheInfo.StructureHit)

	if result.SummaryErr != nil {
		printWarning("summary unavailable: %s", errors.UserMessage(result.SummaryErr))
	}
	if result.Summary != "" {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Summary"))
		fmt.Println(result.Summary)
	}
	return nil
}

// readSource loads the input file, or stdin when input is "-".
func readSource(input string) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(input)
}

// buildRunner assembles the pipeline runner from configuration.
// The summarizer is only constructed when requested so that analysis
// without --summary never demands an API key.
func buildRunner(cmd *cobra.Command, noCache, withSummary bool) (*pipeline.Runner, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var c cache.Cache
	if noCache {
		c = cache.NewNullCache()
	} else if c, err = cfg.Cache.OpenCache(ctx); err != nil {
		return nil, err
	}

	var summarizer pipeline.Summarizer
	if withSummary {
		client, err := summarize.NewClient(cfg.Summarizer.SummarizeConfig())
		if err != nil {
			c.Close()
			return nil, err
		}
		summarizer = client
	}

	return pipeline.NewRunner(c, summarizer, logger), nil
}

// writeArtifacts writes each rendered format to disk and prints the paths.
func writeArtifacts(result *pipeline.Result, input string, opts *analyzeOpts) error {
	base := basePath(opts.output, input)

	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input; stdin input uses
// "flowchart". If output carries a known format extension, that extension
// is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "flowchart"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if err := pipeline.ValidateFormat(ext); err == nil {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// totalSteps sums the recorded steps across all extracted functions.
func totalSteps(result *pipeline.Result) int {
	n := 0
	for _, fn := range result.Structure.Functions() {
		n += len(fn.Steps)
	}
	return n
}
