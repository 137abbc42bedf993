package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/abclisten/pkg/errors"
	"github.com/matzehuels/abclisten/pkg/mindmap"
)

// WriteGraphJSON encodes a mind map as indented JSON and writes it to w.
// The output can be re-imported with [ReadGraphJSON].
func WriteGraphJSON(g mindmap.Graph, w io.Writer) error {
	if g.Edges == nil {
		g.Edges = []mindmap.Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraphJSON decodes a mind map from r and checks its structure with
// [mindmap.Graph.Validate] (unique ids, edges between known nodes, a root).
// ReadGraphJSON does not close r.
func ReadGraphJSON(r io.Reader) (mindmap.Graph, error) {
	var g mindmap.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return mindmap.Graph{}, fmt.Errorf("decode: %w", err)
	}
	if g.Edges == nil {
		g.Edges = []mindmap.Edge{}
	}
	if err := g.Validate(); err != nil {
		return mindmap.Graph{}, err
	}
	return g, nil
}

// ImportGraphJSON reads a mind map from the JSON file at path.
func ImportGraphJSON(path string) (mindmap.Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return mindmap.Graph{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return mindmap.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "mind map %s", path)
	}
	if err != nil {
		return mindmap.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraphJSON(f)
}
