package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/matzehuels/abclisten/pkg/errors"
	abcio "github.com/matzehuels/abclisten/pkg/io"
	"github.com/matzehuels/abclisten/pkg/mindmap"
	"github.com/matzehuels/abclisten/pkg/render/nodelink"
)

// RenderFormat renders g in a single format.
//
// JSON is the graph itself; DOT is the pinned Graphviz source; SVG is laid
// out by Graphviz; PDF and PNG are converted from the SVG by rsvg-convert.
func RenderFormat(ctx context.Context, g mindmap.Graph, format string, opts Options) ([]byte, error) {
	if format == FormatJSON {
		return marshalGraph(g)
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale <= 0 {
			scale = DefaultScale
		}
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// RenderGraphData renders a mind map previously exported as JSON. Malformed
// graphs are reported as INVALID_INPUT.
func RenderGraphData(ctx context.Context, graphData []byte, opts Options) (map[string][]byte, error) {
	g, err := abcio.ReadGraphJSON(bytes.NewReader(graphData))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid mind map")
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	r := &Runner{}
	return r.Render(ctx, g, opts)
}

func writeGraphJSON(g mindmap.Graph, w io.Writer) error {
	return abcio.WriteGraphJSON(g, w)
}
