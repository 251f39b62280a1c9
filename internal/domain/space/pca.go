package space

import "math"

// pcaIterations bounds the power-iteration loop per component.
const pcaIterations = 200

// pcaTolerance is the convergence threshold for power iteration.
const pcaTolerance = 1e-10

// principalComponents computes up to k leading eigenvectors of the covariance
// matrix of data (rows = samples, columns = dimensions) by power iteration
// with deflation.  It returns the components (each of length dims), their
// eigenvalues, and the total variance (trace of the covariance matrix).
//
// The iteration starts from a fixed vector, so the result is deterministic.
// Components whose eigenvalue is numerically zero are not returned; callers
// pad with zero columns when they need a fixed output dimensionality.
func principalComponents(data [][]float64, k int) (components [][]float64, eigenvalues []float64, total float64) {
	n := len(data)
	if n == 0 {
		return nil, nil, 0
	}
	dims := len(data[0])
	if k > dims {
		k = dims
	}
	if k > n {
		k = n
	}

	centered := centerColumns(data)
	cov := covarianceMatrix(centered)
	for i := 0; i < dims; i++ {
		total += cov[i][i]
	}

	for c := 0; c < k; c++ {
		vec, val := dominantEigenvector(cov)
		if val <= pcaTolerance {
			break
		}
		components = append(components, vec)
		eigenvalues = append(eigenvalues, val)
		deflate(cov, vec, val)
	}
	return components, eigenvalues, total
}

// projectOnto maps each row of data onto the given components, producing a
// matrix of len(data) rows and len(components) columns.  Rows are centered
// with the column means of data before projection.
func projectOnto(data [][]float64, components [][]float64) [][]float64 {
	centered := centerColumns(data)
	out := make([][]float64, len(centered))
	for i, row := range centered {
		proj := make([]float64, len(components))
		for j, comp := range components {
			var dot float64
			for d := range row {
				dot += row[d] * comp[d]
			}
			proj[j] = dot
		}
		out[i] = proj
	}
	return out
}

// centerColumns returns a copy of data with each column shifted to zero mean.
func centerColumns(data [][]float64) [][]float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	dims := len(data[0])
	means := make([]float64, dims)
	for _, row := range data {
		for d, v := range row {
			means[d] += v
		}
	}
	for d := range means {
		means[d] /= float64(n)
	}
	out := make([][]float64, n)
	for i, row := range data {
		c := make([]float64, dims)
		for d, v := range row {
			c[d] = v - means[d]
		}
		out[i] = c
	}
	return out
}

// covarianceMatrix computes the dims x dims covariance of centered data,
// normalized by n (population covariance, matching the statistics module).
func covarianceMatrix(centered [][]float64) [][]float64 {
	n := len(centered)
	dims := len(centered[0])
	cov := make([][]float64, dims)
	for i := range cov {
		cov[i] = make([]float64, dims)
	}
	for _, row := range centered {
		for i := 0; i < dims; i++ {
			if row[i] == 0 {
				continue
			}
			for j := i; j < dims; j++ {
				cov[i][j] += row[i] * row[j]
			}
		}
	}
	for i := 0; i < dims; i++ {
		for j := i; j < dims; j++ {
			cov[i][j] /= float64(n)
			cov[j][i] = cov[i][j]
		}
	}
	return cov
}

// dominantEigenvector finds the leading eigenvector/eigenvalue of the
// symmetric matrix m via power iteration from a fixed starting vector.
func dominantEigenvector(m [][]float64) ([]float64, float64) {
	dims := len(m)
	vec := make([]float64, dims)
	// Fixed, slightly uneven start so the iteration cannot sit on a node of
	// the dominant eigenvector.
	for i := range vec {
		vec[i] = 1 + float64(i)*1e-3
	}
	normalize(vec)

	var val float64
	for iter := 0; iter < pcaIterations; iter++ {
		next := matVec(m, vec)
		nextNorm := norm(next)
		if nextNorm <= pcaTolerance {
			return vec, 0
		}
		for i := range next {
			next[i] /= nextNorm
		}
		delta := 0.0
		for i := range next {
			d := next[i] - vec[i]
			if d < 0 {
				d = -d
			}
			if d > delta {
				delta = d
			}
		}
		vec = next
		val = nextNorm
		if delta < pcaTolerance {
			break
		}
	}
	// Rayleigh quotient gives a cleaner eigenvalue than the last norm.
	mv := matVec(m, vec)
	val = 0
	for i := range vec {
		val += vec[i] * mv[i]
	}
	return vec, val
}

// deflate removes the found component from m: m -= val * vec*vecᵀ.
func deflate(m [][]float64, vec []float64, val float64) {
	for i := range m {
		for j := range m[i] {
			m[i][j] -= val * vec[i] * vec[j]
		}
	}
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i, row := range m {
		var sum float64
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func normalize(v []float64) {
	n := norm(v)
	if n == 0 {
		return
	}
	for i := range v {
		v[i] /= n
	}
}
