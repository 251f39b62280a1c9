// Package config defines all configuration structures for SonicAtlas.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import "fmt"

// ProfilesConfig holds parameters for the external DNA-profile source.
type ProfilesConfig struct {
	// Path is the JSON file produced by the DNA extraction pipeline.
	Path string `mapstructure:"path"`
}

// SpaceConfig holds the tunables of the emotional-space engine.
type SpaceConfig struct {
	// TargetRadius is the maximum absolute coordinate after embedding.
	TargetRadius float64 `mapstructure:"target_radius"`

	// SimilarityThreshold is the 4D distance below which two tracks are
	// connected in the similarity graph.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`

	// MaxNeighbors caps the neighbor count used by the manifold embedding.
	MaxNeighbors int `mapstructure:"max_neighbors"`

	// LargeSampleThreshold is the track count above which a global-structure
	// embedding strategy is preferred when one is registered.
	LargeSampleThreshold int `mapstructure:"large_sample_threshold"`

	// MaxClusters caps the number of k-means clusters.
	MaxClusters int `mapstructure:"max_clusters"`

	// Seed drives every stochastic sub-step so repeated runs over identical
	// input produce identical output.
	Seed int64 `mapstructure:"seed"`
}

// JourneyConfig holds journey-synthesis parameters.
type JourneyConfig struct {
	// DefaultDuration is the journey length in seconds when the caller does
	// not supply one.
	DefaultDuration float64 `mapstructure:"default_duration"`

	// DefaultMaxSteps bounds the number of tracks in a path.
	DefaultMaxSteps int `mapstructure:"default_max_steps"`

	// BridgeThreshold is the factor applied to the direct prev-next distance
	// when classifying an interior track as a bridge.
	BridgeThreshold float64 `mapstructure:"bridge_threshold"`
}

// ExportConfig holds visualization-bundle export parameters.
type ExportConfig struct {
	// MaxConnections caps the number of graph edges included in a bundle,
	// strongest first.
	MaxConnections int `mapstructure:"max_connections"`

	// OutputPath is the default bundle destination for the CLI.
	OutputPath string `mapstructure:"output_path"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string   `mapstructure:"format"` // "json" | "console"
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Config is the root configuration structure for the whole application.
type Config struct {
	Profiles ProfilesConfig `mapstructure:"profiles"`
	Space    SpaceConfig    `mapstructure:"space"`
	Journey  JourneyConfig  `mapstructure:"journey"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Space.TargetRadius <= 0 {
		return fmt.Errorf("config: space.target_radius must be > 0, got %g", c.Space.TargetRadius)
	}
	if c.Space.SimilarityThreshold <= 0 {
		return fmt.Errorf("config: space.similarity_threshold must be > 0, got %g", c.Space.SimilarityThreshold)
	}
	if c.Space.MaxNeighbors < 1 {
		return fmt.Errorf("config: space.max_neighbors must be >= 1, got %d", c.Space.MaxNeighbors)
	}
	if c.Space.LargeSampleThreshold < 4 {
		return fmt.Errorf("config: space.large_sample_threshold must be >= 4, got %d", c.Space.LargeSampleThreshold)
	}
	if c.Space.MaxClusters < 1 {
		return fmt.Errorf("config: space.max_clusters must be >= 1, got %d", c.Space.MaxClusters)
	}
	if c.Journey.DefaultDuration <= 0 {
		return fmt.Errorf("config: journey.default_duration must be > 0, got %g", c.Journey.DefaultDuration)
	}
	if c.Journey.DefaultMaxSteps < 2 {
		return fmt.Errorf("config: journey.default_max_steps must be >= 2, got %d", c.Journey.DefaultMaxSteps)
	}
	if c.Journey.BridgeThreshold <= 0 || c.Journey.BridgeThreshold >= 1 {
		return fmt.Errorf("config: journey.bridge_threshold must be in (0, 1), got %g", c.Journey.BridgeThreshold)
	}
	if c.Export.MaxConnections < 0 {
		return fmt.Errorf("config: export.max_connections must be >= 0, got %d", c.Export.MaxConnections)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	return nil
}
