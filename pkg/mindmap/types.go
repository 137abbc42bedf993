package mindmap

import (
	"fmt"
)

// =============================================================================
// Constants
// =============================================================================

// NodeType classifies a node for rendering.
type NodeType string

// Node types.
const (
	TypeRoot       NodeType = "root"
	TypeLetter     NodeType = "letter"
	TypeWord       NodeType = "word"
	TypeKawaLetter NodeType = "kawa-letter"
	TypeKawaWord   NodeType = "kawa-word"
)

// SourceType names the kind of data a root node was generated from.
type SourceType string

// Source types.
const (
	SourceABCList SourceType = "abc-list"
	SourceKawa    SourceType = "kawa"
)

// RootID is the id of the single top-level root in every generated graph.
const RootID = "root"

// KnowledgeBaseLabel is the caption of the combined view's root.
const KnowledgeBaseLabel = "Knowledge Base"

// =============================================================================
// Graph
// =============================================================================

// Position is an advisory canvas coordinate.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData carries the display payload of a node.
type NodeData struct {
	Label         string     `json:"label" yaml:"label"`
	Type          NodeType   `json:"type" yaml:"type"`
	SourceID      string     `json:"sourceId,omitempty" yaml:"sourceId,omitempty"`
	SourceType    SourceType `json:"sourceType,omitempty" yaml:"sourceType,omitempty"`
	LetterContext string     `json:"letterContext,omitempty" yaml:"letterContext,omitempty"`
}

// Node is a positioned mind-map node.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Position Position `json:"position" yaml:"position"`
	Data     NodeData `json:"data" yaml:"data"`
}

// Edge is a directed edge pointing away from the root.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Graph is a generated mind map. Nodes and edges are in emission order.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Root returns the top-level root node.
func (g Graph) Root() (Node, bool) { return g.Node(RootID) }

// Children returns the targets of edges leaving id, in edge order.
func (g Graph) Children(id string) []Node {
	var out []Node
	for _, e := range g.Edges {
		if e.Source != id {
			continue
		}
		if n, ok := g.Node(e.Target); ok {
			out = append(out, n)
		}
	}
	return out
}

// OfType returns the nodes of type t in emission order.
func (g Graph) OfType(t NodeType) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Data.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks the structural invariants of a graph: exactly one node
// with id "root", unique node ids, and edges whose endpoints exist. Graphs
// produced by this package always validate; the check exists for graphs
// read back from storage or submitted by clients.
func (g Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}
	if !ids[RootID] {
		return fmt.Errorf("missing %q node", RootID)
	}
	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true
		if !ids[e.Source] {
			return fmt.Errorf("edge %s: unknown source %q", e.ID, e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("edge %s: unknown target %q", e.ID, e.Target)
		}
	}
	return nil
}

// builder accumulates nodes and edges for one generation call.
type builder struct {
	g Graph
}

func (b *builder) node(id string, pos Position, data NodeData) {
	b.g.Nodes = append(b.g.Nodes, Node{ID: id, Position: pos, Data: data})
}

func (b *builder) edge(source, target string) {
	b.g.Edges = append(b.g.Edges, Edge{
		ID:     edgeID(source, target),
		Source: source,
		Target: target,
	})
}

func (b *builder) graph() Graph {
	if b.g.Edges == nil {
		b.g.Edges = []Edge{}
	}
	return b.g
}

func edgeID(source, target string) string {
	return "edge-" + source + "-" + target
}
