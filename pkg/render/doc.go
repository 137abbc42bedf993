// Package render turns mind maps into images.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws a [mindmap.Graph] with Graphviz, keeping
// every node at the position the layout generator assigned it.
//
// [nodelink]: github.com/matzehuels/abclisten/pkg/render/nodelink
// [mindmap.Graph]: github.com/matzehuels/abclisten/pkg/mindmap.Graph
package render
