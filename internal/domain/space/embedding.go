package space

import (
	"math"

	"github.com/turtacn/SonicAtlas/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// Strategy reduces a set of feature vectors (one row per track, identical
// length) to one 3D position per track.  Implementations must be
// deterministic: the same input yields the same output on every run.
type Strategy interface {
	Name() string
	Embed(vectors [][]float64) ([][3]float64, error)
}

// linearStrategy projects onto the three leading principal components.
// It is the small-sample strategy and the fallback when a richer strategy
// fails numerically.
type linearStrategy struct{}

func (linearStrategy) Name() string { return "pca" }

func (linearStrategy) Embed(vectors [][]float64) ([][3]float64, error) {
	if len(vectors) == 0 {
		return nil, errors.New(errors.ErrCodeSpaceEmptyInput, "no feature vectors to embed")
	}
	components, _, _ := principalComponents(vectors, 3)
	projected := projectOnto(vectors, components)

	// Fewer than 3 informative components: pad with zero columns.
	out := make([][3]float64, len(vectors))
	for i, row := range projected {
		for j := 0; j < len(row) && j < 3; j++ {
			out[i][j] = row[j]
		}
	}
	return out, nil
}

// standardize rescales every feature dimension to zero mean and unit
// variance.  A dimension with zero variance across all tracks is left at
// zero rather than causing a division by zero.
func standardize(vectors [][]float64) [][]float64 {
	n := len(vectors)
	if n == 0 {
		return nil
	}
	dims := len(vectors[0])
	mean := make([]float64, dims)
	for _, row := range vectors {
		for d, v := range row {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(n)
	}

	variance := make([]float64, dims)
	for _, row := range vectors {
		for d, v := range row {
			diff := v - mean[d]
			variance[d] += diff * diff
		}
	}

	out := make([][]float64, n)
	for i, row := range vectors {
		scaled := make([]float64, dims)
		for d, v := range row {
			if variance[d] == 0 {
				continue
			}
			std := math.Sqrt(variance[d] / float64(n))
			scaled[d] = (v - mean[d]) / std
		}
		out[i] = scaled
	}
	return out
}

// scalePositions centers positions at the origin and uniformly scales them so
// the maximum absolute coordinate across all axes equals radius.  When every
// point coincides (max range zero) the centered positions are returned
// unscaled, which leaves them all at the origin.
func scalePositions(positions [][3]float64, radius float64) [][3]float64 {
	n := len(positions)
	if n == 0 {
		return positions
	}
	var mean [3]float64
	for _, p := range positions {
		for a := 0; a < 3; a++ {
			mean[a] += p[a]
		}
	}
	for a := 0; a < 3; a++ {
		mean[a] /= float64(n)
	}

	out := make([][3]float64, n)
	maxAbs := 0.0
	for i, p := range positions {
		for a := 0; a < 3; a++ {
			out[i][a] = p[a] - mean[a]
			if abs := math.Abs(out[i][a]); abs > maxAbs {
				maxAbs = abs
			}
		}
	}
	if maxAbs == 0 {
		return out
	}
	factor := radius / maxAbs
	for i := range out {
		for a := 0; a < 3; a++ {
			out[i][a] *= factor
		}
	}
	return out
}

// smallSampleLimit is the track count at or below which only the linear
// projection is meaningful; a neighborhood-based embedding cannot be
// calibrated on 3 or fewer points.
const smallSampleLimit = 3

// selectStrategy picks the embedding strategy for n samples.  The policy
// mirrors the availability-based selection of the analysis pipeline: a
// global-structure strategy is used above the large-sample threshold when one
// is registered, otherwise the neighborhood-preserving strategy covers every
// sample count above the small-sample limit.
func (m *Mapper) selectStrategy(n int) Strategy {
	switch {
	case n <= smallSampleLimit:
		return linearStrategy{}
	case m.global != nil && n > m.params.LargeSampleThreshold:
		return m.global
	default:
		return newTSNEStrategy(m.params.MaxNeighbors, m.params.Seed)
	}
}

// computePositions runs standardization, strategy selection, embedding, and
// radius scaling for the given feature vectors.  A numerically failing
// strategy degrades to the linear projection rather than surfacing an error.
func (m *Mapper) computePositions(vectors [][]float64) [][3]float64 {
	scaled := standardize(vectors)
	strategy := m.selectStrategy(len(vectors))

	positions, err := strategy.Embed(scaled)
	if err != nil && strategy.Name() != "pca" {
		m.log.Warn("embedding strategy failed, falling back to linear projection",
			logging.String("strategy", strategy.Name()), logging.Err(err))
		positions, err = linearStrategy{}.Embed(scaled)
	}
	if err != nil {
		// Even the fallback failed; every position collapses to the origin.
		positions = make([][3]float64, len(vectors))
	}
	return scalePositions(positions, m.params.TargetRadius)
}
