package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yashsidana/code-clarified/pkg/cache"
	"github.com/yashsidana/code-clarified/pkg/errors"
	"github.com/yashsidana/code-clarified/pkg/flow"
	"github.com/yashsidana/code-clarified/pkg/flowgraph"
	"github.com/yashsidana/code-clarified/pkg/observability"
	"github.com/yashsidana/code-clarified/pkg/pysrc"
	"github.com/yashsidana/code-clarified/pkg/render/dot"
)

// Summarizer produces a plain-language explanation of Python source.
// *summarize.Client satisfies this; tests substitute stubs.
type Summarizer interface {
	Summarize(ctx context.Context, source string, refresh bool) (string, error)
}

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache      cache.Cache
	Summarizer Summarizer
	Logger     *log.Logger
}

// NewRunner creates a runner with the given cache and summarizer.
// If c is nil, a NullCache is used (caching disabled).
// If summarizer is nil, Options.Summarize requests are reported as a
// summary error on the result.
func NewRunner(c cache.Cache, summarizer Summarizer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Summarizer: summarizer,
		Logger:     logger,
	}
}

// Execute runs the complete parse → extract → build → render pipeline with
// caching, plus the optional summarize step.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(opts.Source))
	start := time.Now()

	result := &Result{
		SourceHash: cache.Hash([]byte(opts.Source)),
		Artifacts:  make(map[string][]byte),
	}

	// Stage 1+2: Parse and extract
	parseStart := time.Now()
	structure, structureHit, err := r.AnalyzeWithCacheInfo(ctx, opts)
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}
	result.Structure = structure
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.FunctionCount = structure.Len()
	result.Stats.RecoveredExprs = structure.RecoveredExprs()
	result.CacheInfo.StructureHit = structureHit

	logger.Info("extracted flow structure",
		"functions", structure.Len(),
		"cached", structureHit,
		"duration", result.Stats.ParseTime)

	// Stage 3: Build graph model
	buildStart := time.Now()
	hooks.OnStageStart(ctx, observability.StageBuild)
	result.Graph = flowgraph.Build(structure)
	result.Stats.BuildTime = time.Since(buildStart)
	hooks.OnStageComplete(ctx, observability.StageBuild, result.Stats.BuildTime, nil)

	// Stage 4: Render
	renderStart := time.Now()
	hooks.OnStageStart(ctx, observability.StageRender)
	result.DOT = dot.ToDOT(result.Graph)
	artifacts, artifactHit, err := r.renderArtifacts(ctx, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnStageComplete(ctx, observability.StageRender, result.Stats.RenderTime, err)
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, structure.Len(), time.Since(start), err)
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.ArtifactHit = artifactHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", artifactHit,
		"duration", result.Stats.RenderTime)

	// Optional: summarize. Failures leave the rendered result intact.
	if opts.Summarize {
		summaryStart := time.Now()
		result.Summary, result.SummaryErr = r.summarize(ctx, opts)
		result.Stats.SummaryTime = time.Since(summaryStart)
		if result.SummaryErr != nil {
			logger.Warn("summarizer unavailable", "err", result.SummaryErr)
		}
	}

	hooks.OnAnalyzeComplete(ctx, structure.Len(), time.Since(start), nil)
	return result, nil
}

// AnalyzeWithCacheInfo parses the source and extracts its flow structure,
// consulting the cache first. Returns cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, opts Options) (*flow.Structure, bool, error) {
	sourceHash := cache.Hash([]byte(opts.Source))
	cacheKey := cache.StructureKey(sourceHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var s flow.Structure
			if err := json.Unmarshal(data, &s); err == nil {
				observability.Cache().OnCacheHit(ctx, "structure")
				return &s, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "structure")
	}

	structure, err := Analyze(ctx, opts.Source)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(structure); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLStructure); err == nil {
			observability.Cache().OnCacheSet(ctx, "structure", len(data))
		}
	}
	return structure, false, nil
}

// Analyze parses source and extracts its flow structure without caching.
func Analyze(ctx context.Context, source string) (*flow.Structure, error) {
	hooks := observability.Pipeline()

	parseStart := time.Now()
	hooks.OnStageStart(ctx, observability.StageParse)
	tree, err := pysrc.Parse(ctx, []byte(source))
	hooks.OnStageComplete(ctx, observability.StageParse, time.Since(parseStart), err)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	extractStart := time.Now()
	hooks.OnStageStart(ctx, observability.StageExtract)
	structure := flow.Extract(tree)
	hooks.OnStageComplete(ctx, observability.StageExtract, time.Since(extractStart), nil)

	return structure, nil
}

// renderArtifacts produces every requested format, consulting the artifact
// cache for raster outputs. DOT and JSON are recomputed straight from the
// in-memory result.
func (r *Runner) renderArtifacts(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	rasterHits := 0
	rasterWants := 0

	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(result.DOT)
			continue
		case FormatJSON:
			data, err := flowgraph.Marshal(result.Graph)
			if err != nil {
				return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "marshal graph")
			}
			artifacts[format] = data
			continue
		}

		rasterWants++
		cacheKey := cache.ArtifactKey(result.SourceHash, format)
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				rasterHits++
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data, err := renderRaster(ctx, result.DOT, format)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, rasterWants > 0 && rasterHits == rasterWants, nil
}

func renderRaster(ctx context.Context, dotText, format string) ([]byte, error) {
	if format == FormatSVG {
		return dot.RenderSVG(ctx, dotText)
	}
	return dot.RenderPNG(ctx, dotText)
}

func (r *Runner) summarize(ctx context.Context, opts Options) (string, error) {
	if r.Summarizer == nil {
		return "", errors.New(errors.ErrCodeMissingCredential, "no summarizer configured")
	}
	return r.Summarizer.Summarize(ctx, opts.Source, opts.Refresh)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
