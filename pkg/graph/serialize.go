package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Document is the canonical JSON form of a co-occurrence graph. It is the
// interchange format between the parse and analyze commands and the cache.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a serialized graph node.
type Node struct {
	ID string `json:"id"`
}

// Marshal converts a graph to pretty-printed JSON bytes.
// Output is deterministic: node order follows the graph, edges are canonical.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a graph as JSON to w.
func Write(g *Graph, w io.Writer) error {
	doc := Document{
		Nodes: make([]Node, len(g.nodes)),
		Edges: g.edges,
	}
	for i, id := range g.nodes {
		doc.Nodes[i] = Node{ID: id}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a graph to a JSON file created with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from r. Edges referencing unknown nodes are a
// validation error.
func Read(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromDocument(doc)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Unmarshal deserializes JSON bytes to a graph.
func Unmarshal(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data))
}

func fromDocument(doc Document) (*Graph, error) {
	g := &Graph{
		nodes:     make([]string, len(doc.Nodes)),
		nodeIndex: make(map[string]int, len(doc.Nodes)),
	}
	for i, n := range doc.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node %d: empty id", i)
		}
		if _, dup := g.nodeIndex[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		g.nodes[i] = n.ID
		g.nodeIndex[n.ID] = i
	}
	for _, e := range doc.Edges {
		if _, ok := g.nodeIndex[e.U]; !ok {
			return nil, fmt.Errorf("edge %s-%s: unknown node %q", e.U, e.V, e.U)
		}
		if _, ok := g.nodeIndex[e.V]; !ok {
			return nil, fmt.Errorf("edge %s-%s: unknown node %q", e.U, e.V, e.V)
		}
	}
	g.edges = doc.Edges
	return g, nil
}
