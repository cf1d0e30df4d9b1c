// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package graph

// NodeType distinguishes the partitions of a bipartite graph.
type NodeType string

const (
	// NodeTypeUser marks a user node.
	NodeTypeUser NodeType = "user"

	// NodeTypeArtist marks an artist node.
	NodeTypeArtist NodeType = "artist"
)

// NodeAttrs is the metadata attached to a node.
type NodeAttrs struct {
	// DisplayName is the user's display name. Empty for artist nodes.
	DisplayName string `json:"display_name,omitempty"`

	// PostCount is the lifetime post count used by quality adjustment.
	PostCount int `json:"post_count,omitempty"`

	// Type is set on bipartite graph nodes.
	Type NodeType `json:"node_type,omitempty"`

	// UserID is set on user nodes.
	UserID int64 `json:"user_id,omitempty"`

	// ArtistName is set on artist nodes.
	ArtistName string `json:"artist_name,omitempty"`
}

// Edge is a weighted edge between two nodes.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight"`

	// Type records the dominant interaction type, when a builder tracks it.
	Type string `json:"type,omitempty"`

	// CommonCurators is the number of shared curators on artist-authority edges.
	CommonCurators int `json:"common_curators,omitempty"`
}

// edgeData is the stored edge. Undirected graphs share one edgeData between
// both endpoints.
type edgeData struct {
	from, to       int
	weight         float64
	typ            string
	commonCurators int
}

// adjacency is an insertion-ordered neighbor set.
type adjacency struct {
	order []int
	edges map[int]*edgeData
}

func (a *adjacency) get(v int) (*edgeData, bool) {
	if a.edges == nil {
		return nil, false
	}
	e, ok := a.edges[v]
	return e, ok
}

func (a *adjacency) put(v int, e *edgeData) {
	if a.edges == nil {
		a.edges = make(map[int]*edgeData)
	}
	if _, ok := a.edges[v]; !ok {
		a.order = append(a.order, v)
	}
	a.edges[v] = e
}

// Graph is a weighted directed or undirected graph with string node keys.
type Graph struct {
	directed bool

	keys  []string
	index map[string]int
	attrs []NodeAttrs

	// succ holds out-edges (directed) or incident edges (undirected).
	succ []adjacency

	// pred holds in-edges. Unused for undirected graphs.
	pred []adjacency

	edgeCount int
}

// NewDirected creates an empty directed graph.
func NewDirected() *Graph {
	return &Graph{directed: true, index: make(map[string]int)}
}

// NewUndirected creates an empty undirected graph.
func NewUndirected() *Graph {
	return &Graph{directed: false, index: make(map[string]int)}
}

// Directed reports whether the graph is directed.
func (g *Graph) Directed() bool {
	return g.directed
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.keys)
}

// EdgeCount returns the number of edges. Undirected edges count once.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// AddNode adds a node or replaces the metadata of an existing one and
// returns its index.
func (g *Graph) AddNode(key string, attrs NodeAttrs) int {
	if i, ok := g.index[key]; ok {
		g.attrs[i] = attrs
		return i
	}
	return g.insert(key, attrs)
}

// EnsureNode adds a node with empty metadata if it does not exist yet and
// returns its index.
func (g *Graph) EnsureNode(key string) int {
	if i, ok := g.index[key]; ok {
		return i
	}
	return g.insert(key, NodeAttrs{})
}

func (g *Graph) insert(key string, attrs NodeAttrs) int {
	i := len(g.keys)
	g.keys = append(g.keys, key)
	g.index[key] = i
	g.attrs = append(g.attrs, attrs)
	g.succ = append(g.succ, adjacency{})
	if g.directed {
		g.pred = append(g.pred, adjacency{})
	}
	return i
}

// HasNode reports whether key is a node of the graph.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.index[key]
	return ok
}

// Node returns the metadata of a node.
func (g *Graph) Node(key string) (NodeAttrs, bool) {
	i, ok := g.index[key]
	if !ok {
		return NodeAttrs{}, false
	}
	return g.attrs[i], true
}

// Nodes returns the node keys in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Index returns the dense index of a node, in [0, NodeCount()).
func (g *Graph) Index(key string) (int, bool) {
	i, ok := g.index[key]
	return i, ok
}

// Key returns the key of the node with dense index i.
func (g *Graph) Key(i int) string {
	return g.keys[i]
}

// AddWeight adds w to the weight of the edge from -> to, creating the edge
// and any missing endpoint.
func (g *Graph) AddWeight(from, to string, w float64) {
	e := g.edge(from, to)
	e.weight += w
}

// SetEdge creates or replaces the edge from -> to with weight w.
func (g *Graph) SetEdge(from, to string, w float64) {
	e := g.edge(from, to)
	e.weight = w
}

// SetEdgeType sets the type tag of an existing edge.
func (g *Graph) SetEdgeType(from, to, typ string) bool {
	e, ok := g.lookup(from, to)
	if ok {
		e.typ = typ
	}
	return ok
}

// SetCommonCurators sets the common-curator count of an existing edge.
func (g *Graph) SetCommonCurators(from, to string, n int) bool {
	e, ok := g.lookup(from, to)
	if ok {
		e.commonCurators = n
	}
	return ok
}

func (g *Graph) edge(from, to string) *edgeData {
	u := g.EnsureNode(from)
	v := g.EnsureNode(to)
	if e, ok := g.succ[u].get(v); ok {
		return e
	}

	e := &edgeData{from: u, to: v}
	g.succ[u].put(v, e)
	if g.directed {
		g.pred[v].put(u, e)
	} else if u != v {
		g.succ[v].put(u, e)
	}
	g.edgeCount++
	return e
}

func (g *Graph) lookup(from, to string) (*edgeData, bool) {
	u, ok := g.index[from]
	if !ok {
		return nil, false
	}
	v, ok := g.index[to]
	if !ok {
		return nil, false
	}
	return g.succ[u].get(v)
}

// HasEdge reports whether the edge from -> to exists. For undirected graphs
// the direction is ignored.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.lookup(from, to)
	return ok
}

// Edge returns the edge from -> to, oriented as requested.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	e, ok := g.lookup(from, to)
	if !ok {
		return Edge{}, false
	}
	return g.export(e, g.index[from]), true
}

// export converts stored edge data to an Edge oriented away from node u.
func (g *Graph) export(e *edgeData, u int) Edge {
	from, to := e.from, e.to
	if !g.directed && u == e.to {
		from, to = e.to, e.from
	}
	return Edge{
		From:           g.keys[from],
		To:             g.keys[to],
		Weight:         e.weight,
		Type:           e.typ,
		CommonCurators: e.commonCurators,
	}
}

// Edges returns every edge once, ordered by source insertion then target
// insertion.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for u := range g.keys {
		for _, v := range g.succ[u].order {
			e := g.succ[u].edges[v]
			if !g.directed && e.from != u {
				continue
			}
			out = append(out, g.export(e, u))
		}
	}
	return out
}

// OutEdges returns the edges leaving key. For undirected graphs these are
// all incident edges, oriented away from key.
func (g *Graph) OutEdges(key string) []Edge {
	u, ok := g.index[key]
	if !ok {
		return nil
	}
	out := make([]Edge, 0, len(g.succ[u].order))
	for _, v := range g.succ[u].order {
		out = append(out, g.export(g.succ[u].edges[v], u))
	}
	return out
}

// InEdges returns the edges entering key. For undirected graphs this is the
// same set as OutEdges, oriented toward key.
func (g *Graph) InEdges(key string) []Edge {
	v, ok := g.index[key]
	if !ok {
		return nil
	}
	if !g.directed {
		out := g.OutEdges(key)
		for i := range out {
			out[i].From, out[i].To = out[i].To, out[i].From
		}
		return out
	}
	out := make([]Edge, 0, len(g.pred[v].order))
	for _, u := range g.pred[v].order {
		out = append(out, g.export(g.pred[v].edges[u], u))
	}
	return out
}

// Neighbors returns the keys adjacent to key. For directed graphs these are
// the successors.
func (g *Graph) Neighbors(key string) []string {
	u, ok := g.index[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(g.succ[u].order))
	for _, v := range g.succ[u].order {
		out = append(out, g.keys[v])
	}
	return out
}

// OutDegree returns the number of edges leaving key.
func (g *Graph) OutDegree(key string) int {
	u, ok := g.index[key]
	if !ok {
		return 0
	}
	return len(g.succ[u].order)
}

// InDegree returns the number of edges entering key.
func (g *Graph) InDegree(key string) int {
	v, ok := g.index[key]
	if !ok {
		return 0
	}
	if !g.directed {
		return len(g.succ[v].order)
	}
	return len(g.pred[v].order)
}

// Degree returns in-degree plus out-degree for directed graphs and the
// number of incident edges for undirected graphs.
func (g *Graph) Degree(key string) int {
	if !g.directed {
		return g.OutDegree(key)
	}
	return g.InDegree(key) + g.OutDegree(key)
}

// Successors returns the dense indices of the out-neighbors of node i with
// their weights, in insertion order.
func (g *Graph) Successors(i int) ([]int, []float64) {
	adj := g.succ[i]
	nbrs := make([]int, len(adj.order))
	ws := make([]float64, len(adj.order))
	for k, v := range adj.order {
		nbrs[k] = v
		ws[k] = adj.edges[v].weight
	}
	return nbrs, ws
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() float64 {
	var total float64
	for _, e := range g.Edges() {
		total += e.Weight
	}
	return total
}

// Undirected returns the undirected projection of the graph. Reciprocal
// directed edges merge into one edge whose weight is their sum. An
// undirected graph is returned as a copy.
func (g *Graph) Undirected() *Graph {
	u := NewUndirected()
	for i, key := range g.keys {
		u.AddNode(key, g.attrs[i])
	}
	for _, e := range g.Edges() {
		if g.directed {
			u.AddWeight(e.From, e.To, e.Weight)
		} else {
			u.SetEdge(e.From, e.To, e.Weight)
		}
		if e.Type != "" {
			u.SetEdgeType(e.From, e.To, e.Type)
		}
		if e.CommonCurators != 0 {
			u.SetCommonCurators(e.From, e.To, e.CommonCurators)
		}
	}
	return u
}

// Density returns m/(n(n-1)) for directed graphs and 2m/(n(n-1)) for
// undirected graphs. Graphs with fewer than two nodes have density 0.
func (g *Graph) Density() float64 {
	n := float64(len(g.keys))
	if n <= 1 {
		return 0
	}
	m := float64(g.edgeCount)
	if g.directed {
		return m / (n * (n - 1))
	}
	return 2 * m / (n * (n - 1))
}
