// Package graph defines the undirected, attributed topology graph the cost
// engine evaluates. Nodes and edges carry free-form string attribute maps;
// the graph assigns no meaning to them.
//
// Mutations are protected by an internal mutex, but the contract for a cost
// computation is that the graph is static while it runs.
package graph

import "sync"

// Attrs holds node or edge attributes as loaded from the source file.
type Attrs map[string]string

// Get returns the attribute value for key, or def when the key is absent.
func (a Attrs) Get(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// Node is a topology node: a unique id plus attributes.
type Node struct {
	ID    string
	Attrs Attrs
}

// Type returns the node's "type" attribute, or the empty string when unset.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.Attrs.Get("type", "")
}

// Edge is an undirected connection between two node ids.
// From/To record the order the edge was declared in; cost semantics are
// symmetric in the two endpoints.
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

// Graph is an undirected multigraph with attributed nodes and edges.
// Edge iteration order is the insertion order, so repeated traversals of an
// unmodified graph enumerate edges identically.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	edges []*Edge
}

// New constructs an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// AddNode inserts a node, replacing the attributes of an existing node with
// the same id. A nil attrs is stored as an empty map.
func (g *Graph) AddNode(id string, attrs Attrs) *Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addNodeLocked(id, attrs)
}

func (g *Graph) addNodeLocked(id string, attrs Attrs) *Node {
	if attrs == nil {
		attrs = Attrs{}
	}
	n, ok := g.nodes[id]
	if !ok {
		n = &Node{ID: id, Attrs: attrs}
		g.nodes[id] = n
		return n
	}
	n.Attrs = attrs
	return n
}

// AddEdge inserts an undirected edge. Endpoints that are not yet present are
// created with empty attributes, mirroring how GraphML tolerates edges that
// reference bare node ids.
func (g *Graph) AddEdge(from, to string, attrs Attrs) *Edge {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[from]; !ok {
		g.addNodeLocked(from, nil)
	}
	if _, ok := g.nodes[to]; !ok {
		g.addNodeLocked(to, nil)
	}
	if attrs == nil {
		attrs = Attrs{}
	}
	e := &Edge{From: from, To: to, Attrs: attrs}
	g.edges = append(g.edges, e)
	return e
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// NodeType returns the "type" attribute of the node with the given id.
// Unknown ids and untyped nodes both yield the empty string; this never fails.
func (g *Graph) NodeType(id string) string {
	n, _ := g.Node(id)
	return n.Type()
}

// Edges returns every edge exactly once, in insertion order. The returned
// slice is a copy; the edges themselves are shared.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}
