package space

import (
	"github.com/turtacn/SonicAtlas/internal/domain/dna"
	"github.com/turtacn/SonicAtlas/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// Params collects every tunable of the emotional-space engine.  The values
// are part of the spatial contract: the radius and threshold defaults are
// what the rest of the system (and its visualization consumers) expect.
type Params struct {
	// TargetRadius is the maximum absolute coordinate after embedding.
	TargetRadius float64

	// SimilarityThreshold is the 4D distance below which two tracks are
	// connected in the similarity graph.
	SimilarityThreshold float64

	// MaxNeighbors caps the neighborhood size of the manifold embedding.
	MaxNeighbors int

	// LargeSampleThreshold is the track count above which a registered
	// global-structure strategy is preferred.
	LargeSampleThreshold int

	// MaxClusters caps the number of k-means clusters.
	MaxClusters int

	// BridgeThreshold is the factor applied to the direct prev-next distance
	// when classifying an interior journey track as a bridge.
	BridgeThreshold float64

	// Seed drives every stochastic sub-step (embedding jitter, k-means
	// initialization) so repeated runs are identical.
	Seed int64
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		TargetRadius:         25.0,
		SimilarityThreshold:  0.3,
		MaxNeighbors:         15,
		LargeSampleThreshold: 15,
		MaxClusters:          5,
		BridgeThreshold:      0.7,
		Seed:                 42,
	}
}

// Mapper owns the coordinate cache and the similarity graph.  Every public
// operation runs synchronously to completion; Rebuild is the single writer
// and callers must not run it concurrently with reads.  Reads may run
// concurrently with each other.
type Mapper struct {
	params Params
	log    logging.Logger

	cache  map[string]Coordinate
	order  []string
	graph  *Graph
	global Strategy
}

// NewMapper constructs an empty Mapper.  A nil logger falls back to the
// no-op logger.
func NewMapper(params Params, log logging.Logger) *Mapper {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Mapper{
		params: params,
		log:    log.Named("space"),
		cache:  make(map[string]Coordinate),
		graph:  BuildGraph(nil, nil, params.SimilarityThreshold),
	}
}

// RegisterGlobalStrategy installs an optional embedding strategy that better
// preserves global structure for large track sets.  When none is registered
// the neighborhood-preserving strategy serves all sample counts above the
// small-sample limit.
func (m *Mapper) RegisterGlobalStrategy(s Strategy) {
	m.global = s
}

// Rebuild maps the given profiles into emotional space from scratch: feature
// vectors, standardization, embedding, radius scaling, coordinate cache, and
// the similarity graph.  The previous cache and graph are replaced wholesale.
//
// An empty profile set is the one structurally invalid input and is surfaced
// as an error; every degenerate-but-well-formed input (single track,
// duplicate coordinates, zero-variance dimensions) is handled by internal
// fallbacks.
func (m *Mapper) Rebuild(profiles []*dna.Profile) error {
	if len(profiles) == 0 {
		return errors.New(errors.ErrCodeSpaceEmptyInput, "no profiles available for emotional mapping")
	}

	ids := make([]string, len(profiles))
	emotions := make([][4]float64, len(profiles))
	vectors := make([][]float64, len(profiles))
	for i, p := range profiles {
		ids[i] = p.TrackID
		emotions[i] = p.EmotionVector()
		vectors[i] = dna.FeatureVector(p)
	}

	positions := m.computePositions(vectors)

	cache := make(map[string]Coordinate, len(ids))
	order := make([]string, 0, len(ids))
	for i, id := range ids {
		if _, dup := cache[id]; !dup {
			order = append(order, id)
		}
		cache[id] = Coordinate{
			Valence:    emotions[i][0],
			Energy:     emotions[i][1],
			Complexity: emotions[i][2],
			Tension:    emotions[i][3],
			X:          positions[i][0],
			Y:          positions[i][1],
			Z:          positions[i][2],
		}
	}

	m.cache = cache
	m.order = order
	m.graph = BuildGraph(ids, emotions, m.params.SimilarityThreshold)

	m.log.Info("emotional space rebuilt",
		logging.Int("tracks", len(order)),
		logging.Int("edges", m.graph.EdgeCount()))
	return nil
}

// Coordinate returns the cached coordinate for trackID.
func (m *Mapper) Coordinate(trackID string) (Coordinate, bool) {
	c, ok := m.cache[trackID]
	return c, ok
}

// TrackIDs returns the cached track IDs in their stable insertion order.
// The slice is shared; callers must not modify it.
func (m *Mapper) TrackIDs() []string { return m.order }

// Len returns the number of cached coordinates.
func (m *Mapper) Len() int { return len(m.order) }

// Graph returns the current similarity graph.
func (m *Mapper) Graph() *Graph { return m.graph }

// Params returns the engine parameters.
func (m *Mapper) Params() Params { return m.params }
