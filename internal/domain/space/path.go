package space

import (
	"container/heap"
	"sort"
)

// PathKind identifies which branch produced a path, so callers (and tests)
// can observe whether the graph was traversed or a fallback was taken.
type PathKind string

const (
	// PathKindGraph means the path was found by weighted graph traversal.
	PathKindGraph PathKind = "graph"

	// PathKindInterpolated means no graph path existed and the path was
	// synthesized by interpolating through emotional space.
	PathKindInterpolated PathKind = "interpolated"

	// PathKindDirect means at least one endpoint was unknown to the graph
	// and the path degraded to the two endpoints.
	PathKindDirect PathKind = "direct"
)

// PathResult is an ordered track sequence plus the branch that produced it.
type PathResult struct {
	Kind   PathKind
	Tracks []string
}

// Neighbor is one nearest-neighbor result.
type Neighbor struct {
	TrackID  string  `json:"track_id"`
	Distance float64 `json:"distance"`
}

// Nearest returns up to k track IDs ordered by ascending 4D distance to
// target.  The scan follows the cache's insertion order and the sort is
// stable, so ties resolve identically on every call.
func (m *Mapper) Nearest(target Coordinate, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	out := make([]Neighbor, 0, len(m.order))
	for _, id := range m.order {
		coord := m.cache[id]
		out = append(out, Neighbor{TrackID: id, Distance: target.Distance(coord)})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Distance < out[b].Distance })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// FindPath computes a track sequence from start to end of at most maxSteps
// tracks.  Unknown endpoints degrade to the direct two-point path; a
// disconnected graph degrades to the interpolated path.  Graph traversal
// minimizes the summed inverse edge weight, so chains of highly similar
// tracks are the cheapest routes.
func (m *Mapper) FindPath(start, end string, maxSteps int) PathResult {
	if maxSteps < 2 {
		maxSteps = 2
	}
	if !m.graph.Has(start) || !m.graph.Has(end) {
		return PathResult{Kind: PathKindDirect, Tracks: []string{start, end}}
	}

	path, found := m.dijkstra(start, end)
	if !found {
		return PathResult{Kind: PathKindInterpolated, Tracks: m.InterpolatedPath(start, end, maxSteps)}
	}
	if len(path) > maxSteps {
		path = downsample(path, maxSteps)
	}
	return PathResult{Kind: PathKindGraph, Tracks: path}
}

// InterpolatedPath builds a path by walking the straight line between the
// endpoints' 4D coordinates in maxSteps-1 equal steps and snapping each
// intermediate point to its nearest track.  Tracks already in the path are
// skipped, so the result contains no duplicates and always terminates with
// end.  This works across disconnected graph regions because it never
// consults the graph.
func (m *Mapper) InterpolatedPath(start, end string, maxSteps int) []string {
	startCoord, okStart := m.Coordinate(start)
	endCoord, okEnd := m.Coordinate(end)
	if !okStart || !okEnd {
		return []string{start, end}
	}

	path := []string{start}
	for i := 1; i < maxSteps-1; i++ {
		t := float64(i) / float64(maxSteps-1)
		probe := lerp(startCoord, endCoord, t)
		nearest := m.Nearest(probe, 1)
		if len(nearest) == 0 {
			continue
		}
		candidate := nearest[0].TrackID
		if !contains(path, candidate) && candidate != end {
			path = append(path, candidate)
		}
	}
	return append(path, end)
}

// dijkstra runs a minimum-cost traversal where each edge costs the inverse
// of its similarity weight (equivalently, distance plus epsilon).  Returns
// the path and whether end was reachable from start.
func (m *Mapper) dijkstra(start, end string) ([]string, bool) {
	dist := map[string]float64{start: 0}
	prev := map[string]string{}
	visited := map[string]bool{}

	pq := &costQueue{}
	heap.Init(pq)
	heap.Push(pq, costItem{id: start, cost: 0})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(costItem)
		if visited[item.id] {
			continue
		}
		visited[item.id] = true
		if item.id == end {
			break
		}
		for neighbor, weight := range m.graph.Neighbors(item.id) {
			if visited[neighbor] {
				continue
			}
			cost := item.cost + 1/weight
			if d, seen := dist[neighbor]; !seen || cost < d {
				dist[neighbor] = cost
				prev[neighbor] = item.id
				heap.Push(pq, costItem{id: neighbor, cost: cost})
			}
		}
	}

	if !visited[end] {
		return nil, false
	}

	var path []string
	for at := end; ; {
		path = append(path, at)
		if at == start {
			break
		}
		at = prev[at]
	}
	reverse(path)
	return path, true
}

// downsample selects exactly steps evenly spaced indices from path, always
// keeping the first and last element.
func downsample(path []string, steps int) []string {
	out := make([]string, 0, steps)
	last := len(path) - 1
	for i := 0; i < steps; i++ {
		idx := int(float64(i) * float64(last) / float64(steps-1))
		out = append(out, path[idx])
	}
	out[steps-1] = path[last]
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// costItem / costQueue implement a minimum priority queue over path cost.
// The sequence number breaks cost ties in insertion order so traversal is
// deterministic even when many edges share a weight.
type costItem struct {
	id   string
	cost float64
	seq  int
}

type costQueue struct {
	items []costItem
	next  int
}

func (q *costQueue) Len() int { return len(q.items) }

func (q *costQueue) Less(i, j int) bool {
	if q.items[i].cost != q.items[j].cost {
		return q.items[i].cost < q.items[j].cost
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *costQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *costQueue) Push(x interface{}) {
	item := x.(costItem)
	item.seq = q.next
	q.next++
	q.items = append(q.items, item)
}

func (q *costQueue) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}
