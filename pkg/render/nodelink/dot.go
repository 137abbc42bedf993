package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/abclisten/pkg/mindmap"
	"github.com/matzehuels/abclisten/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node type and letter context below each label.
	Detailed bool
}

// nodeStyles maps node types to their DOT attributes.
var nodeStyles = map[mindmap.NodeType]string{
	mindmap.TypeRoot:       `shape=ellipse, fillcolor="#1f6feb", fontcolor=white, fontsize=20`,
	mindmap.TypeLetter:     `shape=circle, fillcolor="#a5d6ff", fontsize=18`,
	mindmap.TypeWord:       `shape=box, fillcolor=white`,
	mindmap.TypeKawaLetter: `shape=circle, fillcolor="#ffd8a8", fontsize=18`,
	mindmap.TypeKawaWord:   `shape=box, fillcolor="#fff4e6"`,
}

// ToDOT converts a mind map to Graphviz DOT. Every node is pinned at its
// generated position (pos="x,-y!" in points, y flipped because Graphviz
// grows upward), so the neato engine used by [RenderSVG] draws the layout
// exactly as generated.
func ToDOT(g mindmap.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  node [style=\"rounded,filled\", fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#8b949e\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n mindmap.Node, detailed bool) string {
	if !detailed {
		return n.Data.Label
	}
	parts := []string{string(n.Data.Type)}
	if n.Data.LetterContext != "" {
		parts = append(parts, "letter: "+n.Data.LetterContext)
	}
	if n.Data.SourceType != "" {
		parts = append(parts, "source: "+string(n.Data.SourceType))
	}
	return n.Data.Label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n mindmap.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.Position.X), fmtCoord(-n.Position.Y)),
	}
	if style, ok := nodeStyles[n.Data.Type]; ok {
		attrs = append(attrs, style)
	}
	return attrs
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine,
// which honours pinned node positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
