package config

// Default value constants.  These mirror the engine's documented behavior:
// the embedding radius, similarity threshold, and edge cap are part of the
// spatial contract, not arbitrary tuning knobs.
const (
	DefaultProfilesPath = "data/sonic_dna.json"

	DefaultTargetRadius         = 25.0
	DefaultSimilarityThreshold  = 0.3
	DefaultMaxNeighbors         = 15
	DefaultLargeSampleThreshold = 15
	DefaultMaxClusters          = 5
	DefaultSeed                 = 42

	DefaultJourneyDuration  = 60.0
	DefaultJourneyMaxSteps  = 10
	DefaultBridgeThreshold  = 0.7

	DefaultExportMaxConnections = 20000
	DefaultExportOutputPath     = "data/emotional_space_data.json"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the application
// default.  Fields already set by the caller are left unchanged so explicit
// configuration always wins.  Must be called after unmarshalling and before
// Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Profiles.Path == "" {
		cfg.Profiles.Path = DefaultProfilesPath
	}

	if cfg.Space.TargetRadius == 0 {
		cfg.Space.TargetRadius = DefaultTargetRadius
	}
	if cfg.Space.SimilarityThreshold == 0 {
		cfg.Space.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.Space.MaxNeighbors == 0 {
		cfg.Space.MaxNeighbors = DefaultMaxNeighbors
	}
	if cfg.Space.LargeSampleThreshold == 0 {
		cfg.Space.LargeSampleThreshold = DefaultLargeSampleThreshold
	}
	if cfg.Space.MaxClusters == 0 {
		cfg.Space.MaxClusters = DefaultMaxClusters
	}
	if cfg.Space.Seed == 0 {
		cfg.Space.Seed = DefaultSeed
	}

	if cfg.Journey.DefaultDuration == 0 {
		cfg.Journey.DefaultDuration = DefaultJourneyDuration
	}
	if cfg.Journey.DefaultMaxSteps == 0 {
		cfg.Journey.DefaultMaxSteps = DefaultJourneyMaxSteps
	}
	if cfg.Journey.BridgeThreshold == 0 {
		cfg.Journey.BridgeThreshold = DefaultBridgeThreshold
	}

	if cfg.Export.MaxConnections == 0 {
		cfg.Export.MaxConnections = DefaultExportMaxConnections
	}
	if cfg.Export.OutputPath == "" {
		cfg.Export.OutputPath = DefaultExportOutputPath
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

// NewDefault returns a Config populated entirely with defaults.  Useful for
// tests and for running the CLI without a config file.
func NewDefault() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
