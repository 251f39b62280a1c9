package space

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/SonicAtlas/internal/domain/dna"
)

func TestStatisticsPerDimension(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	stats := m.Statistics()
	assert.Equal(t, 5, stats.TotalTracks)

	valence := stats.Ranges["valence"]
	assert.Equal(t, 0.0, valence.Min)
	assert.Equal(t, 1.0, valence.Max)
	assert.InDelta(t, 0.5, valence.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(0.125), valence.Std, 1e-12)

	// The remaining dimensions are constant at zero.
	for _, name := range []string{"energy", "complexity", "tension"} {
		dim := stats.Ranges[name]
		assert.Zero(t, dim.Min)
		assert.Zero(t, dim.Max)
		assert.Zero(t, dim.Std)
	}

	assert.InDelta(t, 0.5, stats.Center["valence"], 1e-12)
	assert.InDelta(t, math.Sqrt(0.125), stats.Spread["valence"], 1e-12)
}

func TestStatisticsEmptySpace(t *testing.T) {
	m := NewMapper(DefaultParams(), nil)

	stats := m.Statistics()
	assert.Zero(t, stats.TotalTracks)
	assert.Nil(t, stats.Ranges)
	assert.Nil(t, stats.Center)
	assert.Nil(t, stats.Spread)
}

func TestClustersPartitionAllTracks(t *testing.T) {
	profiles := []*dna.Profile{
		coordProfile("low-a", 0.05, 0.1, 0, 0),
		coordProfile("low-b", 0.10, 0.1, 0, 0),
		coordProfile("low-c", 0.08, 0.2, 0, 0),
		coordProfile("high-a", 0.90, 0.9, 0, 0),
		coordProfile("high-b", 0.95, 0.8, 0, 0),
		coordProfile("high-c", 0.92, 0.9, 0, 0),
		coordProfile("mid-a", 0.50, 0.5, 0, 0),
		coordProfile("mid-b", 0.52, 0.5, 0, 0),
	}
	m := newTestMapper(t, profiles...)

	report := m.Clusters()
	assert.Equal(t, 8, report.TotalTracks)
	require.Len(t, report.Clusters, 5)

	seen := map[string]bool{}
	total := 0
	for _, c := range report.Clusters {
		assert.Equal(t, len(c.Tracks), c.Size)
		total += c.Size
		for _, id := range c.Tracks {
			assert.False(t, seen[id], "track %s assigned twice", id)
			seen[id] = true
		}
	}
	assert.Equal(t, 8, total, "every track belongs to exactly one cluster")
}

func TestClustersCappedByTrackCount(t *testing.T) {
	m := newTestMapper(t,
		coordProfile("a", 0.1, 0, 0, 0),
		coordProfile("b", 0.9, 0, 0, 0),
		coordProfile("c", 0.5, 0.7, 0, 0),
	)

	report := m.Clusters()
	assert.Len(t, report.Clusters, 3)
}

func TestClustersDegradeBelowTwoTracks(t *testing.T) {
	m := newTestMapper(t, coordProfile("solo", 0.5, 0.5, 0.5, 0.5))

	report := m.Clusters()
	assert.Equal(t, 1, report.TotalTracks)
	assert.Empty(t, report.Clusters)
	assert.Len(t, report.Projection, 1)
}

func TestClustersDeterministic(t *testing.T) {
	profiles := make([]*dna.Profile, 0, 10)
	for i := 0; i < 10; i++ {
		f := float64(i)
		profiles = append(profiles, coordProfile(string(rune('a'+i)), math.Sin(f), math.Cos(f), f/10, f/20))
	}
	m := newTestMapper(t, profiles...)

	first := m.Clusters()
	second := m.Clusters()
	assert.Equal(t, first, second)
}

func TestClustersExplainedVariance(t *testing.T) {
	// All variance lies on the valence axis, so the first component explains
	// everything.
	m := newTestMapper(t, chainProfiles()...)

	report := m.Clusters()
	require.NotEmpty(t, report.ExplainedVariance)
	assert.InDelta(t, 1.0, report.ExplainedVariance[0], 1e-9)

	sum := 0.0
	for _, r := range report.ExplainedVariance {
		sum += r
	}
	assert.LessOrEqual(t, sum, 1.0+1e-9)
}

func TestKMeansSeparatesObviousGroups(t *testing.T) {
	points := [][]float64{
		{0, 0, 0, 0}, {0.1, 0, 0, 0}, {0.05, 0.05, 0, 0},
		{5, 5, 0, 0}, {5.1, 5, 0, 0}, {5, 5.1, 0, 0},
	}
	labels, centroids := kmeans(points, 2, 42)
	require.Len(t, labels, 6)
	require.Len(t, centroids, 2)

	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[3], labels[5])
	assert.NotEqual(t, labels[0], labels[3])
}

func TestKMeansSeededReproducibility(t *testing.T) {
	points := [][]float64{
		{0.1, 0.2, 0.3, 0.4},
		{0.9, 0.8, 0.7, 0.6},
		{0.4, 0.4, 0.4, 0.4},
		{0.6, 0.1, 0.9, 0.2},
	}
	l1, c1 := kmeans(points, 2, 42)
	l2, c2 := kmeans(points, 2, 42)
	assert.Equal(t, l1, l2)
	assert.Equal(t, c1, c2)
}
