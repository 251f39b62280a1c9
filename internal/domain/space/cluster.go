package space

import (
	"math"
	"math/rand"
)

// kmeansIterations bounds the assignment/update loop.
const kmeansIterations = 100

// DimensionStats summarizes one emotional dimension across the cache.
type DimensionStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Statistics is the aggregate report over all cached coordinates.  All
// values are plain numbers so the struct serializes directly to JSON.
type Statistics struct {
	TotalTracks int                       `json:"total_tracks"`
	Ranges      map[string]DimensionStats `json:"emotional_ranges,omitempty"`
	Center      map[string]float64        `json:"emotional_center,omitempty"`
	Spread      map[string]float64        `json:"emotional_spread,omitempty"`
}

// Cluster is one emotional grouping of tracks.
type Cluster struct {
	ID     int        `json:"id"`
	Tracks []string   `json:"tracks"`
	Center Coordinate `json:"center"`
	Size   int        `json:"size"`
}

// ClusterReport carries the clustering result plus a reduced-dimensionality
// diagnostic projection of the raw coordinates, independent of the 3D layout
// embedding.
type ClusterReport struct {
	TotalTracks       int         `json:"total_tracks"`
	Clusters          []Cluster   `json:"clusters"`
	ExplainedVariance []float64   `json:"pca_explained_variance,omitempty"`
	Projection        [][]float64 `json:"pca_coordinates,omitempty"`
}

var dimensionNames = [4]string{"valence", "energy", "complexity", "tension"}

// Statistics computes min, max, mean, and population standard deviation per
// emotional dimension, plus the 4D center.  An empty cache yields an empty
// report rather than an error.
func (m *Mapper) Statistics() Statistics {
	n := len(m.order)
	if n == 0 {
		return Statistics{}
	}

	stats := Statistics{
		TotalTracks: n,
		Ranges:      make(map[string]DimensionStats, 4),
		Center:      make(map[string]float64, 4),
		Spread:      make(map[string]float64, 4),
	}

	for d, name := range dimensionNames {
		min := math.Inf(1)
		max := math.Inf(-1)
		var sum float64
		for _, id := range m.order {
			v := m.cache[id].Emotion()[d]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
		mean := sum / float64(n)

		var sq float64
		for _, id := range m.order {
			diff := m.cache[id].Emotion()[d] - mean
			sq += diff * diff
		}
		std := math.Sqrt(sq / float64(n))

		stats.Ranges[name] = DimensionStats{Min: min, Max: max, Mean: mean, Std: std}
		stats.Center[name] = mean
		stats.Spread[name] = std
	}
	return stats
}

// Clusters partitions the cached tracks into at most MaxClusters groups with
// seeded k-means over the raw 4D coordinates and attaches the diagnostic
// linear projection.  Fewer than 2 tracks degrade to zero clusters.
func (m *Mapper) Clusters() ClusterReport {
	n := len(m.order)
	report := ClusterReport{TotalTracks: n}
	if n == 0 {
		return report
	}

	points := make([][]float64, n)
	for i, id := range m.order {
		e := m.cache[id].Emotion()
		points[i] = []float64{e[0], e[1], e[2], e[3]}
	}

	components, eigenvalues, total := principalComponents(points, 4)
	if total > 0 {
		ratios := make([]float64, len(eigenvalues))
		for i, v := range eigenvalues {
			ratios[i] = v / total
		}
		report.ExplainedVariance = ratios
	}
	report.Projection = projectOnto(points, components)

	k := m.params.MaxClusters
	if k > n {
		k = n
	}
	if k < 2 {
		return report
	}

	labels, centroids := kmeans(points, k, m.params.Seed)
	for c := 0; c < k; c++ {
		cluster := Cluster{ID: c, Tracks: []string{}}
		for i, label := range labels {
			if label == c {
				cluster.Tracks = append(cluster.Tracks, m.order[i])
			}
		}
		cluster.Size = len(cluster.Tracks)
		cluster.Center = Coordinate{
			Valence:    centroids[c][0],
			Energy:     centroids[c][1],
			Complexity: centroids[c][2],
			Tension:    centroids[c][3],
		}
		report.Clusters = append(report.Clusters, cluster)
	}
	return report
}

// kmeans is a plain Lloyd's iteration with seeded initial centroid choice.
// Points and k must be non-empty with k <= len(points).  Empty clusters keep
// their previous centroid, so a centroid count never collapses mid-run.
func kmeans(points [][]float64, k int, seed int64) (labels []int, centroids [][]float64) {
	n := len(points)
	dims := len(points[0])
	rng := rand.New(rand.NewSource(seed))

	// Initial centroids: k distinct point indices in seeded shuffle order.
	perm := rng.Perm(n)
	centroids = make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), points[perm[c]]...)
	}

	labels = make([]int, n)
	for iter := 0; iter < kmeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := math.Inf(1)
			for c := range centroids {
				var d float64
				for j := 0; j < dims; j++ {
					diff := p[j] - centroids[c][j]
					d += diff * diff
				}
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		for c := range centroids {
			var count int
			sum := make([]float64, dims)
			for i, p := range points {
				if labels[i] != c {
					continue
				}
				count++
				for j := 0; j < dims; j++ {
					sum[j] += p[j]
				}
			}
			if count == 0 {
				continue
			}
			for j := 0; j < dims; j++ {
				centroids[c][j] = sum[j] / float64(count)
			}
		}

		if !changed && iter > 0 {
			break
		}
	}
	return labels, centroids
}
