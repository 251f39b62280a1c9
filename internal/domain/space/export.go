package space

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/turtacn/SonicAtlas/internal/domain/dna"
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// TrackExport is one track's entry in the visualization bundle: the raw
// emotional coordinates, the embedded position, and provider metadata.
// Everything is plain numbers and strings so the bundle serializes without
// exposing any engine-internal container types.
type TrackExport struct {
	ID          string             `json:"id"`
	Coordinates map[string]float64 `json:"coordinates"`
	Position    map[string]float64 `json:"position"`
	Metadata    map[string]any     `json:"metadata"`
}

// Bundle is the full export consumed by a visualization layer: every cached
// track, the strongest graph connections, statistics, and clusters.
type Bundle struct {
	Tracks      []TrackExport `json:"tracks"`
	Connections []Edge        `json:"connections"`
	Statistics  Statistics    `json:"statistics"`
	Clusters    ClusterReport `json:"clusters"`
}

// Export assembles the full visualization bundle.  Connections are capped at
// maxConnections, strongest first with insertion-order tie-break.  The
// provider supplies per-track metadata (tempo, key, mode); a nil provider or
// missing profile simply leaves the metadata empty.
func (m *Mapper) Export(provider dna.Provider, maxConnections int) *Bundle {
	bundle := &Bundle{
		Tracks:      make([]TrackExport, 0, len(m.order)),
		Connections: m.graph.TopEdges(maxConnections),
		Statistics:  m.Statistics(),
		Clusters:    m.Clusters(),
	}
	if bundle.Connections == nil {
		bundle.Connections = []Edge{}
	}

	for _, id := range m.order {
		coord := m.cache[id]
		entry := TrackExport{
			ID: id,
			Coordinates: map[string]float64{
				"valence":    coord.Valence,
				"energy":     coord.Energy,
				"complexity": coord.Complexity,
				"tension":    coord.Tension,
			},
			Position: map[string]float64{
				"x": coord.X,
				"y": coord.Y,
				"z": coord.Z,
			},
			Metadata: map[string]any{},
		}
		if provider != nil {
			if profile, ok := provider.Get(id); ok {
				entry.Metadata["tempo"] = profile.Tempo
				if profile.KeySignature != "" {
					entry.Metadata["key"] = profile.KeySignature
				}
				if profile.Mode != "" {
					entry.Metadata["mode"] = profile.Mode
				}
			}
		}
		bundle.Tracks = append(bundle.Tracks, entry)
	}
	return bundle
}

// WriteFile serializes the bundle as indented JSON to path, creating parent
// directories as needed.
func (b *Bundle) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "failed to create export directory")
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode export bundle")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportWriteFailed, "failed to write export bundle to "+path)
	}
	return nil
}
