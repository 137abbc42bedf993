// Package pipeline turns stored lists and KaWas into rendered mind maps.
//
// A run has two stages:
//
//  1. Generate: load the source from the [library.Library] and build a
//     [mindmap.Graph] ([mindmap.FromList], [mindmap.FromKawaEntries] or
//     [mindmap.Combined]).
//  2. Render: produce each requested artifact (JSON, DOT, SVG, PDF, PNG).
//
// Rendered artifacts are cached in a [store.Store] keyed by the hash of the
// graph JSON, so an unchanged list is never rendered twice:
//
//	runner := pipeline.NewRunner(lib, cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  pipeline.SourceList,
//	    Name:    "Tiere",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	os.WriteFile("tiere.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/mindmap"
)

// =============================================================================
// Sources and Formats
// =============================================================================

// Mind-map sources.
const (
	SourceList = "list" // one ABC list, Name is the list name
	SourceKawa = "kawa" // one KaWa, Name is the word
	SourceAll  = "all"  // combined overview of the whole library
)

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// Formats lists every output format in a stable order.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG, FormatPDF, FormatPNG}

// ValidFormats is a set of valid output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// ValidSources is a set of valid mind-map sources.
var ValidSources = map[string]bool{
	SourceList: true,
	SourceKawa: true,
	SourceAll:  true,
}

// DefaultScale is the PNG scale factor used when Options.Scale is zero.
const DefaultScale = 2.0

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	Source  string   // list, kawa or all
	Name    string   // list name or KaWa word; ignored for all
	Formats []string // defaults to svg

	Detailed bool    // annotate node labels with type and source
	Scale    float64 // PNG scale factor
	NoCache  bool    // skip the artifact cache for reads and writes

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateSource(o.Source); err != nil {
		return err
	}
	if o.Source != SourceAll && o.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a name is required for source %q", o.Source)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.validated = true
	return nil
}

// ValidateSource checks that a source is valid.
func ValidateSource(source string) error {
	if !ValidSources[source] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid source %q (must be one of: list, kawa, all)", source)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: json, dot, svg, pdf, png)", format)
	}
	return nil
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

// ContentType returns the MIME type of a rendered artifact.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// =============================================================================
// Result
// =============================================================================

// Result holds the output of a pipeline run.
type Result struct {
	Graph     mindmap.Graph
	GraphHash string            // SHA-256 of the graph JSON
	Artifacts map[string][]byte // format -> bytes
	Warnings  []string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records timing and size information.
type Stats struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
	NodeCount    int
	EdgeCount    int
}

// CacheInfo reports which artifacts came from the cache.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // every requested format came from cache
}

// String summarizes the run for log output.
func (s Stats) String() string {
	return fmt.Sprintf("%d nodes, %d edges, generate %s, render %s",
		s.NodeCount, s.EdgeCount, s.GenerateTime.Round(time.Microsecond), s.RenderTime.Round(time.Microsecond))
}
