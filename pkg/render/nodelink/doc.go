// Package nodelink renders mind maps as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	g := mindmap.FromList("Tiere", list.Buckets)
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// Nodes keep the coordinates computed by the mind-map generator: each node
// carries a pinned pos attribute and the graph sets inputscale=72 so the
// values are read as points. Roots, letters and words are styled by
// [mindmap.NodeType]. Edges are drawn as plain lines without arrowheads.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
