package space

import (
	"math"
	"math/rand"

	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// t-SNE gradient-descent parameters.  Values follow the common reference
// implementation; the iteration count is fixed so runtime is predictable.
const (
	tsneIterations        = 300
	tsneExaggerationIters = 100
	tsneExaggeration      = 4.0
	tsneLearningRate      = 100.0
	tsneInitialMomentum   = 0.5
	tsneFinalMomentum     = 0.8
	tsneMinProbability    = 1e-12
	tsnePreReduceDims     = 50
	tsnePerplexityTries   = 50
)

// tsneStrategy embeds feature vectors into 3D with exact t-SNE: pairwise
// affinities calibrated per point to a target perplexity, minimized against a
// Student-t low-dimensional distribution by gradient descent with momentum.
// Initialization comes from the linear projection and the only stochastic
// sub-step (tie-breaking jitter) is driven by a fixed seed, so the embedding
// is deterministic for a given input.
type tsneStrategy struct {
	maxNeighbors int
	seed         int64
}

func newTSNEStrategy(maxNeighbors int, seed int64) *tsneStrategy {
	if maxNeighbors < 2 {
		maxNeighbors = 2
	}
	return &tsneStrategy{maxNeighbors: maxNeighbors, seed: seed}
}

func (s *tsneStrategy) Name() string { return "tsne" }

// perplexity scales the neighborhood size down for small sample counts and
// caps it at the configured maximum.
func (s *tsneStrategy) perplexity(n int) float64 {
	p := n / 4
	if p > s.maxNeighbors {
		p = s.maxNeighbors
	}
	if p < 2 {
		p = 2
	}
	return float64(p)
}

func (s *tsneStrategy) Embed(vectors [][]float64) ([][3]float64, error) {
	n := len(vectors)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeSpaceEmptyInput, "no feature vectors to embed")
	}
	if n <= smallSampleLimit {
		return nil, errors.Newf(errors.ErrCodeEmbeddingFailed, "t-SNE needs more than %d samples, got %d", smallSampleLimit, n)
	}

	data := vectors
	if len(vectors[0]) > tsnePreReduceDims {
		components, _, _ := principalComponents(vectors, tsnePreReduceDims)
		data = projectOnto(vectors, components)
	}

	p := s.jointProbabilities(data)

	// Initialize from the linear projection, shrunk to a tight cloud so the
	// early exaggeration phase can organize it, with seeded jitter to
	// separate exactly coincident points.
	init, err := linearStrategy{}.Embed(data)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(s.seed))
	y := make([][3]float64, n)
	for i := range y {
		for a := 0; a < 3; a++ {
			y[i][a] = init[i][a]*1e-4 + rng.NormFloat64()*1e-6
		}
	}

	velocity := make([][3]float64, n)
	gains := make([][3]float64, n)
	for i := range gains {
		gains[i] = [3]float64{1, 1, 1}
	}

	for iter := 0; iter < tsneIterations; iter++ {
		exaggeration := 1.0
		if iter < tsneExaggerationIters {
			exaggeration = tsneExaggeration
		}
		momentum := tsneInitialMomentum
		if iter >= tsneExaggerationIters {
			momentum = tsneFinalMomentum
		}

		grad, valid := tsneGradient(p, y, exaggeration)
		if !valid {
			return nil, errors.New(errors.ErrCodeEmbeddingFailed, "t-SNE gradient diverged")
		}

		for i := range y {
			for a := 0; a < 3; a++ {
				// Adaptive gains: grow when the gradient keeps direction,
				// shrink when it flips.
				if (grad[i][a] > 0) == (velocity[i][a] > 0) {
					gains[i][a] *= 0.8
				} else {
					gains[i][a] += 0.2
				}
				if gains[i][a] < 0.01 {
					gains[i][a] = 0.01
				}
				velocity[i][a] = momentum*velocity[i][a] - tsneLearningRate*gains[i][a]*grad[i][a]
				y[i][a] += velocity[i][a]
			}
		}
	}
	return y, nil
}

// jointProbabilities computes the symmetrized high-dimensional affinity
// matrix.  Each row's Gaussian bandwidth is calibrated by binary search so
// the row's entropy matches log(perplexity).
func (s *tsneStrategy) jointProbabilities(data [][]float64) [][]float64 {
	n := len(data)
	d2 := squaredDistances(data)
	target := math.Log(s.perplexity(n))

	cond := make([][]float64, n)
	for i := 0; i < n; i++ {
		cond[i] = calibrateRow(d2[i], i, target)
	}

	// Symmetrize and normalize: p_ij = (p_j|i + p_i|j) / 2n.
	p := make([][]float64, n)
	for i := range p {
		p[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := (cond[i][j] + cond[j][i]) / (2 * float64(n))
			if v < tsneMinProbability {
				v = tsneMinProbability
			}
			p[i][j] = v
		}
	}
	return p
}

// calibrateRow binary-searches the precision (inverse bandwidth) for row i so
// that the conditional distribution's entropy hits the target, then returns
// the normalized conditional probabilities.
func calibrateRow(d2 []float64, i int, target float64) []float64 {
	n := len(d2)
	beta := 1.0
	betaMin := math.Inf(-1)
	betaMax := math.Inf(1)
	row := make([]float64, n)

	for try := 0; try < tsnePerplexityTries; try++ {
		var sum float64
		for j := 0; j < n; j++ {
			if j == i {
				row[j] = 0
				continue
			}
			row[j] = math.Exp(-d2[j] * beta)
			sum += row[j]
		}
		if sum == 0 {
			// All other points coincide with point i; fall back to uniform.
			for j := 0; j < n; j++ {
				if j != i {
					row[j] = 1 / float64(n-1)
				}
			}
			return row
		}

		// Shannon entropy of the normalized row.
		var entropy float64
		for j := 0; j < n; j++ {
			if j == i || row[j] == 0 {
				continue
			}
			pj := row[j] / sum
			entropy -= pj * math.Log(pj)
		}

		diff := entropy - target
		if math.Abs(diff) < 1e-5 {
			break
		}
		if diff > 0 {
			betaMin = beta
			if math.IsInf(betaMax, 1) {
				beta *= 2
			} else {
				beta = (beta + betaMax) / 2
			}
		} else {
			betaMax = beta
			if math.IsInf(betaMin, -1) {
				beta /= 2
			} else {
				beta = (beta + betaMin) / 2
			}
		}
	}

	var sum float64
	for j := 0; j < n; j++ {
		sum += row[j]
	}
	if sum > 0 {
		for j := range row {
			row[j] /= sum
		}
	}
	return row
}

// tsneGradient computes the Kullback-Leibler gradient for the current layout.
// Returns valid=false when the layout has produced non-finite values.
func tsneGradient(p [][]float64, y [][3]float64, exaggeration float64) ([][3]float64, bool) {
	n := len(y)

	// Student-t affinities in the low-dimensional space.
	q := make([][]float64, n)
	num := make([][]float64, n)
	var qSum float64
	for i := 0; i < n; i++ {
		q[i] = make([]float64, n)
		num[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var d2 float64
			for a := 0; a < 3; a++ {
				diff := y[i][a] - y[j][a]
				d2 += diff * diff
			}
			t := 1 / (1 + d2)
			num[i][j], num[j][i] = t, t
			qSum += 2 * t
		}
	}
	if qSum == 0 || math.IsNaN(qSum) || math.IsInf(qSum, 0) {
		return nil, false
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			qij := num[i][j] / qSum
			if qij < tsneMinProbability {
				qij = tsneMinProbability
			}
			q[i][j] = qij
		}
	}

	grad := make([][3]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			mult := 4 * (exaggeration*p[i][j] - q[i][j]) * num[i][j]
			for a := 0; a < 3; a++ {
				grad[i][a] += mult * (y[i][a] - y[j][a])
			}
		}
		for a := 0; a < 3; a++ {
			if math.IsNaN(grad[i][a]) || math.IsInf(grad[i][a], 0) {
				return nil, false
			}
		}
	}
	return grad, true
}

// squaredDistances computes the full pairwise squared-distance matrix.
func squaredDistances(data [][]float64) [][]float64 {
	n := len(data)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for d := range data[i] {
				diff := data[i][d] - data[j][d]
				sum += diff * diff
			}
			out[i][j], out[j][i] = sum, sum
		}
	}
	return out
}
