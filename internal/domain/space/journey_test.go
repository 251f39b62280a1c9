package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeTimestampsSpreadLinearly(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	journey := m.Synthesize("t0", "t4", nil, 60, 10)
	require.Len(t, journey.Points, 5)
	assert.Equal(t, PathKindGraph, journey.PathKind)

	for i, want := range []float64{0, 15, 30, 45, 60} {
		assert.InDelta(t, want, journey.Points[i].Timestamp, 1e-9)
	}

	assert.Equal(t, TransitionStart, journey.Points[0].Transition)
	assert.Equal(t, TransitionEnd, journey.Points[4].Transition)
	for i := 1; i < 4; i++ {
		assert.Equal(t, TransitionSmooth, journey.Points[i].Transition)
	}
}

func TestSynthesizeSinglePointJourney(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	journey := m.Synthesize("t2", "t2", nil, 60, 10)
	require.Len(t, journey.Points, 1)
	assert.Zero(t, journey.Points[0].Timestamp)
	assert.Equal(t, TransitionStart, journey.Points[0].Transition)
	assert.Equal(t, "t2", journey.Points[0].TrackID)
}

func TestSynthesizeCarriesCoordinates(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	journey := m.Synthesize("t0", "t4", nil, 30, 10)
	require.Len(t, journey.Points, 5)
	for i, p := range journey.Points {
		coord, ok := m.Coordinate(p.TrackID)
		require.True(t, ok)
		assert.Equal(t, coord, p.Coordinate, "point %d", i)
	}
}

func TestSynthesizeDropsUnplacedTracks(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	// The unknown endpoint forces the direct branch; only the known track
	// can be placed, so the journey collapses to one point at timestamp 0.
	journey := m.Synthesize("t0", "ghost", nil, 60, 10)
	assert.Equal(t, PathKindDirect, journey.PathKind)
	require.Len(t, journey.Points, 1)
	assert.Equal(t, "t0", journey.Points[0].TrackID)
	assert.Zero(t, journey.Points[0].Timestamp)
}

func TestSynthesizeWaypointsReplacePath(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	// A waypoint at valence 0.5 snaps to t2 exactly.
	waypoint := Coordinate{Valence: 0.5}
	journey := m.Synthesize("t0", "t4", []Coordinate{waypoint}, 60, 10)

	require.Len(t, journey.Points, 3)
	assert.Equal(t, "t0", journey.Points[0].TrackID)
	assert.Equal(t, "t2", journey.Points[1].TrackID)
	assert.Equal(t, "t4", journey.Points[2].TrackID)

	for i, want := range []float64{0, 30, 60} {
		assert.InDelta(t, want, journey.Points[i].Timestamp, 1e-9)
	}
}

func TestSynthesizeWaypointDuplicatesSkipped(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	// Both waypoints snap to t2; a waypoint snapping to the end track
	// contributes nothing either.
	waypoints := []Coordinate{
		{Valence: 0.5},
		{Valence: 0.52},
		{Valence: 1.0},
	}
	journey := m.Synthesize("t0", "t4", waypoints, 60, 10)

	ids := make([]string, len(journey.Points))
	for i, p := range journey.Points {
		ids[i] = p.TrackID
	}
	assert.Equal(t, []string{"t0", "t2", "t4"}, ids)
}

func TestBridgeClassification(t *testing.T) {
	// With the default threshold the detour through an interior point can
	// never undercut the direct distance, so a permissive threshold is needed
	// to observe the bridge branch at all.
	params := DefaultParams()
	params.BridgeThreshold = 2.0
	m := NewMapper(params, nil)
	require.NoError(t, m.Rebuild(chainProfiles()))

	journey := m.Synthesize("t0", "t4", nil, 60, 10)
	require.Len(t, journey.Points, 5)
	assert.Equal(t, TransitionStart, journey.Points[0].Transition)
	assert.Equal(t, TransitionEnd, journey.Points[4].Transition)
	for i := 1; i < 4; i++ {
		// Collinear interiors: detour equals direct, which is within twice
		// the direct distance.
		assert.Equal(t, TransitionBridge, journey.Points[i].Transition, "point %d", i)
	}
}

func TestBridgeNotClassifiedUnderDefaultThreshold(t *testing.T) {
	m := newTestMapper(t, chainProfiles()...)

	journey := m.Synthesize("t0", "t4", nil, 60, 10)
	for i := 1; i < len(journey.Points)-1; i++ {
		assert.Equal(t, TransitionSmooth, journey.Points[i].Transition)
	}
}
