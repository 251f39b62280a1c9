// Package dna defines the sonic DNA profile consumed from the external audio
// analysis pipeline and the fixed-layout feature vector derived from it.  The
// package is the boundary to the DNA provider: nothing here touches audio.
package dna

import (
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// Fixed sizes of the optional gene groups, in the order they occupy the
// feature vector.  A provider may omit any group; an omitted group is a nil
// slice and contributes zero padding instead.
const (
	HarmonicGeneSize = 12 // chroma vector
	TimbralGeneSize  = 13 // MFCC spectral characteristics
	TexturalGeneSize = 7  // spectral contrast patterns
	DynamicGeneSize  = 10 // energy envelope variations
	RhythmicGeneSize = 8  // temporal pattern sequence
)

// tempoNorm divides raw BPM into the same unit range as the emotional scalars.
const tempoNorm = 200.0

// Profile is one track's sonic DNA as delivered by the external provider:
// four emotional scalars, tempo, key metadata, and up to five optional gene
// groups.  Gene groups are presence-checked via nil, never via reflection.
type Profile struct {
	TrackID string `json:"track_id"`

	// Emotional scalars, each normalized by the provider.
	Valence    float64 `json:"valence"`
	Energy     float64 `json:"energy"`
	Complexity float64 `json:"complexity"`
	Tension    float64 `json:"tension"`

	Tempo        float64 `json:"tempo"` // BPM
	KeySignature string  `json:"key_signature,omitempty"`
	Mode         string  `json:"mode,omitempty"` // Major/Minor

	HarmonicGenes []float64 `json:"harmonic_genes,omitempty"`
	TimbralGenes  []float64 `json:"timbral_genes,omitempty"`
	TexturalGenes []float64 `json:"textural_genes,omitempty"`
	DynamicGenes  []float64 `json:"dynamic_genes,omitempty"`
	RhythmicGenes []float64 `json:"rhythmic_genes,omitempty"`
}

// Validate checks the structural invariants a profile must satisfy before it
// can enter the engine.  Missing gene groups are fine; a present group of the
// wrong size is not an error either (the feature builder truncates or pads),
// so validation only covers identity and tempo.
func (p *Profile) Validate() error {
	if p.TrackID == "" {
		return errors.New(errors.ErrCodeProfileInvalid, "profile is missing track_id")
	}
	if p.Tempo < 0 {
		return errors.Newf(errors.ErrCodeProfileInvalid, "profile %s has negative tempo %g", p.TrackID, p.Tempo)
	}
	return nil
}

// EmotionVector returns the raw 4D emotional coordinate of the profile.
func (p *Profile) EmotionVector() [4]float64 {
	return [4]float64{p.Valence, p.Energy, p.Complexity, p.Tension}
}
