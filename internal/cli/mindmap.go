package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/abclisten/pkg/errors"
	abcio "github.com/matzehuels/abclisten/pkg/io"
	"github.com/matzehuels/abclisten/pkg/pipeline"
)

// mindmapFlags holds the flags shared by the mindmap subcommands.
type mindmapFlags struct {
	formats  string  // comma-separated output formats
	output   string  // output file (single format) or base path
	detailed bool    // annotate node labels
	scale    float64 // PNG scale factor
	noCache  bool    // bypass the artifact cache
}

// mindmapCommand creates the mindmap command with its subcommands.
func (c *CLI) mindmapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mindmap",
		Aliases: []string{"map"},
		Short:   "Render ABC-Lists and KaWas as radial mind maps",
		Long: `Render ABC-Lists and KaWas as radial mind maps.

List and KaWa maps anchor the root near the top of the canvas, above the
center of a ring of letters, with words on an outer ring. The "all" map
centers its root among one node per list and KaWa. Graphs are rendered through Graphviz. Rendered files are
cached by the hash of the graph, so re-rendering an unchanged list is instant.

Examples:
  abclisten mindmap list Tiere -f svg,png
  abclisten mindmap kawa Anna -o anna.pdf
  abclisten mindmap all --detailed
  abclisten mindmap render tiere.json -f png`,
	}

	cmd.AddCommand(c.mindmapSourceCommand(pipeline.SourceList, "list <name>", "Render one ABC-List"))
	cmd.AddCommand(c.mindmapSourceCommand(pipeline.SourceKawa, "kawa <word>", "Render one KaWa"))
	cmd.AddCommand(c.mindmapSourceCommand(pipeline.SourceAll, "all", "Render every list and KaWa under one knowledge-base root"))
	cmd.AddCommand(c.mindmapRenderCommand())

	return cmd
}

func (c *CLI) mindmapSourceCommand(source, use, short string) *cobra.Command {
	var flags mindmapFlags

	args := cobra.ExactArgs(1)
	if source == pipeline.SourceAll {
		args = cobra.NoArgs
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				Source:   source,
				Formats:  parseFormats(flags.formats, c.cfg.Export.Formats),
				Detailed: flags.detailed,
				Scale:    flags.scale,
				NoCache:  flags.noCache,
			}
			if len(args) > 0 {
				opts.Name = args[0]
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runMindmap(cmd, opts, flags.output)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): json, dot, svg, pdf, png (comma-separated; default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "annotate labels with node type and source")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) mindmapRenderCommand() *cobra.Command {
	var flags mindmapFlags

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a mind map previously exported as JSON",
		Long: `Render a mind map previously exported with -f json. The graph is drawn
as stored, so hand-edited node positions and labels are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := abcio.ImportGraphJSON(args[0])
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Formats:  parseFormats(flags.formats, c.cfg.Export.Formats),
				Detailed: flags.detailed,
				Scale:    flags.scale,
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if slices.Contains(opts.Formats, pipeline.FormatJSON) {
				return errors.New(errors.ErrCodeInvalidFormat, "render writes dot, svg, pdf or png, not json")
			}

			p := newPrinter(cmd.OutOrStdout())
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			artifacts, err := runner.Render(cmd.Context(), g, opts)
			if err != nil {
				return err
			}

			output := flags.output
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			}
			paths, err := writeArtifacts(cmd.Context(), artifacts, opts.Formats, outputBase(output, "", opts))
			if err != nil {
				return err
			}
			p.success("Rendered %s", filepath.Base(args[0]))
			p.stats(g.NodeCount(), g.EdgeCount(), false)
			for _, path := range paths {
				p.file(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): dot, svg, pdf, png (comma-separated; default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "annotate labels with node type and source")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// runMindmap runs the pipeline and writes one file per format.
func (c *CLI) runMindmap(cmd *cobra.Command, opts pipeline.Options, output string) error {
	ctx := cmd.Context()
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	runner := c.newRunner(s.lib, opts.NoCache)
	defer runner.Close()

	p := newPrinter(cmd.OutOrStdout())
	spinner := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", describeSource(opts))).
		Still(s.settings.Current().ReducedMotion)
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError(p, "Mind map failed")
		return err
	}

	paths, err := writeArtifacts(ctx, result.Artifacts, opts.Formats, outputBase(output, c.cfg.Export.Dir, opts))
	if err != nil {
		spinner.StopWithError(p, "Could not write mind map")
		return err
	}
	spinner.StopWithSuccess(p, "Rendered "+describeSource(opts))

	for _, w := range result.Warnings {
		p.warning("%s", w)
	}
	p.stats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	for _, path := range paths {
		p.file(path)
	}
	return nil
}

// describeSource names the pipeline input for status lines.
func describeSource(opts pipeline.Options) string {
	switch opts.Source {
	case pipeline.SourceList:
		return "list " + opts.Name
	case pipeline.SourceKawa:
		return "KaWa " + opts.Name
	}
	return "knowledge base"
}

// outputBase derives the base path for the output files. An explicit output
// wins; a known format extension on it is stripped. Otherwise the name is
// derived from the source and placed in dir.
func outputBase(output, dir string, opts pipeline.Options) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}

	var base string
	switch opts.Source {
	case pipeline.SourceList:
		base = fileSlug(opts.Name)
	case pipeline.SourceKawa:
		base = "kawa-" + fileSlug(opts.Name)
	default:
		base = "knowledge-base"
	}
	if dir != "" {
		return filepath.Join(dir, base)
	}
	return base
}

// fileSlug turns a list name into a file name: lowercase, with spaces and
// path separators replaced by dashes.
func fileSlug(name string) string {
	r := strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

// writeArtifacts writes base.<format> for each format and returns the paths
// in format order.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	logger := loggerFromContext(ctx)

	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(artifacts[format]))
		paths = append(paths, path)
	}
	return paths, nil
}
