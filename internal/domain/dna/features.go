package dna

// FeatureVectorSize is the fixed length of every feature vector fed to the
// embedding engine: 5 scalar slots plus the five gene groups
// (12+13+7+10+8 = 50), padded with zeros when groups are missing.
const FeatureVectorSize = 60

// appendGroup copies up to size values from group into dst.  A nil or short
// group contributes only what it has; overlong groups are truncated to the
// group's fixed size.
func appendGroup(dst []float64, group []float64, size int) []float64 {
	if len(group) > size {
		group = group[:size]
	}
	return append(dst, group...)
}

// FeatureVector assembles the fixed-layout 60-float vector for one profile:
// valence, energy, complexity, tension, tempo/200, then harmonic, timbral,
// textural, dynamic, and rhythmic genes in that order.  Missing groups shift
// later groups forward and the tail is zero-padded, matching the layout the
// extraction pipeline has always produced.  Pure function, never fails.
func FeatureVector(p *Profile) []float64 {
	features := make([]float64, 0, FeatureVectorSize)
	features = append(features,
		p.Valence,
		p.Energy,
		p.Complexity,
		p.Tension,
		p.Tempo/tempoNorm,
	)

	features = appendGroup(features, p.HarmonicGenes, HarmonicGeneSize)
	features = appendGroup(features, p.TimbralGenes, TimbralGeneSize)
	features = appendGroup(features, p.TexturalGenes, TexturalGeneSize)
	features = appendGroup(features, p.DynamicGenes, DynamicGeneSize)
	features = appendGroup(features, p.RhythmicGenes, RhythmicGeneSize)

	for len(features) < FeatureVectorSize {
		features = append(features, 0)
	}
	return features[:FeatureVectorSize]
}
