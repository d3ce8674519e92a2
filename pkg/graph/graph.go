// Package graph holds the victory graph: a weighted directed graph whose
// edges point from the winner of a game to the loser. Shortest chains are
// found with Dijkstra over the edge weights, so recent games (low weight)
// are preferred over prior seasons (high weight).
package graph

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// DefaultWeight is used for edges without a weight attribute.
const DefaultWeight = 1.0

// Graph is an immutable victory graph. Build one with a Builder.
type Graph struct {
	g      *simple.WeightedDirectedGraph
	index  map[string]int64
	ids    []string
	names  []string
	byName map[string]string
	labels map[[2]int64]string
	sorted []string
}

// Builder accumulates nodes and edges for a Graph.
type Builder struct {
	graph *Graph
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{graph: &Graph{
		g:      simple.NewWeightedDirectedGraph(0, math.Inf(1)),
		index:  make(map[string]int64),
		byName: make(map[string]string),
		labels: make(map[[2]int64]string),
	}}
}

// AddNode registers a team node. An empty label falls back to the id.
// Re-adding an id updates its label.
func (b *Builder) AddNode(id, label string) {
	if label == "" {
		label = id
	}
	n := b.node(id)
	b.graph.names[n] = label
}

// AddEdge records that src beat dst. Unknown endpoints are added with their id
// as label. Self loops are ignored; for duplicate edges the lowest weight wins.
func (b *Builder) AddEdge(src, dst string, weight float64, label string) error {
	if weight < 0 || math.IsNaN(weight) {
		return fmt.Errorf("edge %s -> %s: invalid weight %v", src, dst, weight)
	}
	if src == dst {
		return nil
	}

	u, v := b.node(src), b.node(dst)
	if existing := b.graph.g.WeightedEdge(u, v); existing != nil && existing.Weight() <= weight {
		return nil
	}

	b.graph.g.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(u),
		T: simple.Node(v),
		W: weight,
	})
	b.graph.labels[[2]int64{u, v}] = label
	return nil
}

// Build finalizes the graph. The builder must not be used afterwards.
func (b *Builder) Build() *Graph {
	g := b.graph
	seen := make(map[string]bool, len(g.ids))
	for i, id := range g.ids {
		name := g.names[i]
		g.byName[normalize(name)] = id
		if !seen[name] {
			seen[name] = true
			g.sorted = append(g.sorted, name)
		}
	}
	sort.Strings(g.sorted)
	return g
}

func (b *Builder) node(id string) int64 {
	g := b.graph
	if n, ok := g.index[id]; ok {
		return n
	}
	n := int64(len(g.ids))
	g.index[id] = n
	g.ids = append(g.ids, id)
	g.names = append(g.names, id)
	g.g.AddNode(simple.Node(n))
	return n
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.ids)
}

// TeamNames returns the sorted, de-duplicated display names.
func (g *Graph) TeamNames() []string {
	out := make([]string, len(g.sorted))
	copy(out, g.sorted)
	return out
}

// Lookup resolves a display name, case-insensitively and ignoring
// surrounding whitespace, to its node id.
func (g *Graph) Lookup(name string) (string, bool) {
	key := normalize(name)
	if key == "" {
		return "", false
	}
	id, ok := g.byName[key]
	return id, ok
}

// Name returns the display name of a node id.
func (g *Graph) Name(id string) string {
	n, ok := g.index[id]
	if !ok {
		return id
	}
	return g.names[n]
}

// Step is one edge of a shortest path.
type Step struct {
	From   string
	To     string
	Weight float64

	// Label is the stored edge label, possibly empty.
	Label string
}

// ShortestPath returns the minimum-weight chain of node ids from src to dst.
// ok is false when either id is unknown or dst is unreachable.
func (g *Graph) ShortestPath(src, dst string) (nodes []string, steps []Step, ok bool) {
	u, okU := g.index[src]
	v, okV := g.index[dst]
	if !okU || !okV {
		return nil, nil, false
	}

	shortest := path.DijkstraFrom(simple.Node(u), g.g)
	route, weight := shortest.To(v)
	if len(route) == 0 || math.IsInf(weight, 1) {
		return nil, nil, false
	}

	nodes = make([]string, len(route))
	for i, n := range route {
		nodes[i] = g.ids[n.ID()]
	}

	steps = make([]Step, 0, len(route)-1)
	for i := 0; i+1 < len(route); i++ {
		a, b := route[i].ID(), route[i+1].ID()
		steps = append(steps, Step{
			From:   g.ids[a],
			To:     g.ids[b],
			Weight: g.g.WeightedEdge(a, b).Weight(),
			Label:  g.labels[[2]int64{a, b}],
		})
	}

	return nodes, steps, true
}
