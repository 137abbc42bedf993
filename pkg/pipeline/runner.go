package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/library"
	"github.com/matzehuels/abclisten/pkg/mindmap"
	"github.com/matzehuels/abclisten/pkg/observability"
	"github.com/matzehuels/abclisten/pkg/store"
)

// ArtifactPrefix namespaces cached artifacts in the cache store.
const ArtifactPrefix = "artifact:"

// Runner executes the pipeline against a library with an artifact cache.
// The CLI and the HTTP server share it.
//
// The Runner holds no per-run state, so multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Library *library.Library
	Cache   store.Store
	Logger  *log.Logger
}

// NewRunner creates a runner. If cache is nil, caching is disabled. If logger
// is nil, output is discarded.
func NewRunner(lib *library.Library, cache store.Store, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Library: lib,
		Cache:   cache,
		Logger:  logger,
	}
}

// Execute runs generate and render for opts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	genStart := time.Now()
	g, warnings, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Warnings = warnings
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Debug("generated mind map",
		"source", opts.Source,
		"name", opts.Name,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, hash, hits, err := r.renderCached(ctx, g, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.GraphHash = hash
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate loads the source named by opts and builds its mind map. The
// returned warnings describe lossy input, such as a KaWa word with repeated
// letters.
func (r *Runner) Generate(ctx context.Context, opts Options) (mindmap.Graph, []string, error) {
	if err := ValidateSource(opts.Source); err != nil {
		return mindmap.Graph{}, nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Source, opts.Name)
	start := time.Now()

	g, warnings, err := r.generate(ctx, opts)

	hooks.OnGenerateComplete(ctx, opts.Source, opts.Name, g.NodeCount(), time.Since(start), err)
	for _, w := range warnings {
		r.Logger.Warn(w, "source", opts.Source, "name", opts.Name)
	}
	return g, warnings, err
}

func (r *Runner) generate(ctx context.Context, opts Options) (mindmap.Graph, []string, error) {
	switch opts.Source {
	case SourceList:
		list, err := r.Library.GetList(ctx, opts.Name)
		if err != nil {
			return mindmap.Graph{}, nil, err
		}
		return mindmap.FromList(list.Name, list.Buckets), nil, nil

	case SourceKawa:
		k, err := r.Library.GetKawa(ctx, opts.Name)
		if err != nil {
			return mindmap.Graph{}, nil, err
		}
		return mindmap.FromKawaEntries(k), kawaWarnings(k), nil

	default:
		in, err := r.Library.CombinedInput(ctx)
		if err != nil {
			return mindmap.Graph{}, nil, err
		}
		return mindmap.Combined(in), nil, nil
	}
}

func kawaWarnings(k kawa.Kawa) []string {
	dups := kawa.DuplicateLetters(k.Word)
	if len(dups) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("letters %s repeat in %q; letter-keyed exports keep one association each",
		strings.Join(dups, ", "), k.Word)}
}

// Render produces the requested formats for g without touching the cache.
func (r *Runner) Render(ctx context.Context, g mindmap.Graph, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, g, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderCached renders every format, serving and filling the artifact cache
// unless opts.NoCache is set. It returns the artifacts, the graph hash and
// the formats that were cache hits.
func (r *Runner) renderCached(ctx context.Context, g mindmap.Graph, opts Options) (map[string][]byte, string, []string, error) {
	graphJSON, err := marshalGraph(g)
	if err != nil {
		return nil, "", nil, err
	}
	hash := store.Hash(graphJSON)
	useCache := r.Cache != nil && !opts.NoCache

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits []string
	for _, format := range opts.Formats {
		key := ArtifactKey(hash, format, opts)

		if useCache {
			data, ok, err := r.Cache.Get(ctx, key)
			switch {
			case err != nil:
				r.Logger.Warn("artifact cache read failed", "key", key, "error", err)
			case ok:
				observability.Store().OnHit(ctx, "artifact")
				artifacts[format] = data
				hits = append(hits, format)
				continue
			default:
				observability.Store().OnMiss(ctx, "artifact")
			}
		}

		var data []byte
		if format == FormatJSON {
			data = graphJSON
		} else if data, err = RenderFormat(ctx, g, format, opts); err != nil {
			return nil, "", nil, err
		}
		artifacts[format] = data

		if useCache {
			if err := r.Cache.Set(ctx, key, data); err != nil {
				r.Logger.Warn("artifact cache write failed", "key", key, "error", err)
			} else {
				observability.Store().OnSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, hash, hits, nil
}

// ArtifactKey returns the cache key of one rendered format. Options that
// change the bytes of a format are part of the key.
func ArtifactKey(graphHash, format string, opts Options) string {
	key := ArtifactPrefix + graphHash + ":" + format
	switch format {
	case FormatDOT, FormatSVG, FormatPDF:
		if opts.Detailed {
			key += ":detailed"
		}
	case FormatPNG:
		if opts.Detailed {
			key += ":detailed"
		}
		key += fmt.Sprintf(":x%g", opts.Scale)
	}
	return key
}

// ClearCache removes every cached artifact.
func (r *Runner) ClearCache(ctx context.Context) (int, error) {
	if r.Cache == nil {
		return 0, nil
	}
	keys, err := r.Cache.Keys(ctx, ArtifactPrefix)
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if err := r.Cache.Remove(ctx, k); err != nil {
			return 0, err
		}
		observability.Store().OnRemove(ctx, "artifact")
	}
	return len(keys), nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func marshalGraph(g mindmap.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphJSON(g, &buf); err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	return buf.Bytes(), nil
}
