// Package space implements the emotional/semantic space engine: feature
// embedding into 3D layout coordinates, the similarity graph over raw
// emotional coordinates, path finding, journey synthesis, and cluster and
// statistics analysis.  All state is owned in memory by a Mapper instance;
// nothing in this package persists anything.
package space

import "math"

// Coordinate is a point in emotional space: four intrinsic dimensions plus
// three positional coordinates.  X, Y, Z are derived by an embedding run and
// are relative to the other tracks of that run, never absolute.  A Coordinate
// is immutable once it enters the coordinate cache.
type Coordinate struct {
	Valence    float64 `json:"valence"`
	Energy     float64 `json:"energy"`
	Complexity float64 `json:"complexity"`
	Tension    float64 `json:"tension"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Emotion returns the raw 4D emotional vector.
func (c Coordinate) Emotion() [4]float64 {
	return [4]float64{c.Valence, c.Energy, c.Complexity, c.Tension}
}

// Position returns the embedded 3D position.
func (c Coordinate) Position() [3]float64 {
	return [3]float64{c.X, c.Y, c.Z}
}

// Distance is the Euclidean distance between the raw 4D emotional vectors.
// Graph connectivity and all similarity decisions use this, not the embedded
// positions, so they are independent of embedding artifacts.
func (c Coordinate) Distance(o Coordinate) float64 {
	return emotionDistance(c.Emotion(), o.Emotion())
}

// PositionDistance is the Euclidean distance between embedded 3D positions.
func (c Coordinate) PositionDistance(o Coordinate) float64 {
	dx := c.X - o.X
	dy := c.Y - o.Y
	dz := c.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func emotionDistance(a, b [4]float64) float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// lerp interpolates each emotional dimension between a and b at parameter t.
func lerp(a, b Coordinate, t float64) Coordinate {
	return Coordinate{
		Valence:    a.Valence + t*(b.Valence-a.Valence),
		Energy:     a.Energy + t*(b.Energy-a.Energy),
		Complexity: a.Complexity + t*(b.Complexity-a.Complexity),
		Tension:    a.Tension + t*(b.Tension-a.Tension),
	}
}
