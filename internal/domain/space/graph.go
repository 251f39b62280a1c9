package space

import "sort"

// distanceEpsilon excludes exact duplicates from edge creation and keeps edge
// weights finite.
const distanceEpsilon = 1e-6

// Edge is one undirected connection between two emotionally close tracks.
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Weight   float64 `json:"weight"`
	Distance float64 `json:"distance"`
}

// Graph is the undirected weighted similarity graph.  Nodes are track IDs;
// an edge exists iff the raw 4D emotional distance between two tracks is
// nonzero and below the similarity threshold, with weight 1/(distance+eps).
// A Graph is rebuilt wholesale on every embedding run; it is never updated
// incrementally.
type Graph struct {
	adjacency map[string]map[string]float64
	edges     []Edge
}

// BuildGraph connects every pair of tracks whose 4D emotional distance is in
// (0, threshold) with an O(N²) pairwise pass.  Edge insertion order follows
// the pair iteration order (i ascending, then j), which makes the tie-break
// of TopEdges stable across runs.
func BuildGraph(ids []string, emotions [][4]float64, threshold float64) *Graph {
	g := &Graph{adjacency: make(map[string]map[string]float64, len(ids))}
	for _, id := range ids {
		g.adjacency[id] = make(map[string]float64)
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			d := emotionDistance(emotions[i], emotions[j])
			if d >= threshold || d <= distanceEpsilon {
				continue
			}
			w := 1 / (d + distanceEpsilon)
			g.adjacency[ids[i]][ids[j]] = w
			g.adjacency[ids[j]][ids[i]] = w
			g.edges = append(g.edges, Edge{Source: ids[i], Target: ids[j], Weight: w, Distance: d})
		}
	}
	return g
}

// Has reports whether trackID is a node of the graph.
func (g *Graph) Has(trackID string) bool {
	_, ok := g.adjacency[trackID]
	return ok
}

// Neighbors returns the adjacency map (neighbor ID to edge weight) of
// trackID, or nil when the track is not a node.
func (g *Graph) Neighbors(trackID string) map[string]float64 {
	return g.adjacency[trackID]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adjacency) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns all edges in insertion order.  The slice is shared; callers
// must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// TopEdges returns up to max edges ordered by descending weight.  Ties keep
// insertion order (stable sort), so the ranking is reproducible run to run.
// A max of 0 or less returns an empty slice.
func (g *Graph) TopEdges(max int) []Edge {
	if max <= 0 {
		return nil
	}
	sorted := make([]Edge, len(g.edges))
	copy(sorted, g.edges)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Weight > sorted[b].Weight
	})
	if len(sorted) > max {
		sorted = sorted[:max]
	}
	return sorted
}
