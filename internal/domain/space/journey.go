package space

// TransitionType tags a journey point's role within the sequence.
type TransitionType string

const (
	TransitionStart  TransitionType = "start"
	TransitionEnd    TransitionType = "end"
	TransitionBridge TransitionType = "bridge"
	TransitionSmooth TransitionType = "smooth"
)

// JourneyPoint is one step of an emotional journey.  Points are created
// transiently per request and never retained by the engine.
type JourneyPoint struct {
	Coordinate Coordinate     `json:"coordinate"`
	TrackID    string         `json:"track_id,omitempty"`
	Timestamp  float64        `json:"timestamp"`
	Transition TransitionType `json:"transition_type"`
}

// Journey is the result of one synthesis request.
type Journey struct {
	Points []JourneyPoint `json:"points"`

	// PathKind reports how the underlying track sequence was obtained.
	// Waypoint journeys replace the graph path entirely and report the kind
	// of the discarded base path for diagnostic purposes.
	PathKind PathKind `json:"path_kind"`
}

// Synthesize produces a time-stamped journey from start to end.  Waypoints,
// when supplied, replace the graph-derived path with: start, the nearest
// track to each waypoint (deduplicated), end.  Timestamps are spread
// linearly over duration; a single-point journey sits at timestamp 0.
func (m *Mapper) Synthesize(start, end string, waypoints []Coordinate, duration float64, maxSteps int) Journey {
	base := m.FindPath(start, end, maxSteps)

	tracks := base.Tracks
	if len(waypoints) > 0 {
		tracks = m.incorporateWaypoints(tracks, waypoints)
	}

	// Tracks without a cached coordinate (possible on the direct-path branch)
	// cannot be placed in space and are dropped before timestamping, keeping
	// the i/(T-1) invariant exact over the emitted points.
	placed := make([]string, 0, len(tracks))
	for _, id := range tracks {
		if _, ok := m.Coordinate(id); ok {
			placed = append(placed, id)
		}
	}

	points := make([]JourneyPoint, 0, len(placed))
	total := len(placed)
	for i, id := range placed {
		coord, _ := m.Coordinate(id)

		timestamp := 0.0
		if total > 1 {
			timestamp = float64(i) / float64(total-1) * duration
		}

		var transition TransitionType
		switch {
		case i == 0:
			transition = TransitionStart
		case i == total-1:
			transition = TransitionEnd
		case m.isBridge(placed, i):
			transition = TransitionBridge
		default:
			transition = TransitionSmooth
		}

		points = append(points, JourneyPoint{
			Coordinate: coord,
			TrackID:    id,
			Timestamp:  timestamp,
			Transition: transition,
		})
	}
	return Journey{Points: points, PathKind: base.Kind}
}

// incorporateWaypoints rebuilds the path as start, the nearest track to each
// waypoint in order, then end.  A waypoint whose nearest track is already in
// the path contributes nothing.
func (m *Mapper) incorporateWaypoints(tracks []string, waypoints []Coordinate) []string {
	if len(tracks) == 0 {
		return tracks
	}
	enhanced := []string{tracks[0]}
	last := tracks[len(tracks)-1]

	for _, wp := range waypoints {
		nearest := m.Nearest(wp, 1)
		if len(nearest) == 0 {
			continue
		}
		candidate := nearest[0].TrackID
		if !contains(enhanced, candidate) && candidate != last {
			enhanced = append(enhanced, candidate)
		}
	}
	return append(enhanced, last)
}

// isBridge reports whether the interior track at position i sits efficiently
// between its neighbors: the detour through it must be shorter than the
// direct prev-next distance scaled by the bridge threshold.
func (m *Mapper) isBridge(path []string, i int) bool {
	if i <= 0 || i >= len(path)-1 {
		return false
	}
	prev, okPrev := m.Coordinate(path[i-1])
	curr, okCurr := m.Coordinate(path[i])
	next, okNext := m.Coordinate(path[i+1])
	if !okPrev || !okCurr || !okNext {
		return false
	}
	detour := prev.Distance(curr) + curr.Distance(next)
	return detour < prev.Distance(next)*m.params.BridgeThreshold
}
