package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "SONICATLAS"

// newViper builds a pre-configured Viper instance: YAML file type, SONICATLAS_
// env prefix, automatic env binding, and a key replacer mapping "." to "_" so
// that nested keys like "space.seed" resolve to "SONICATLAS_SPACE_SEED".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys registers every configuration key with its default value.
// Viper's Unmarshal only sees keys it knows about, so without this an
// environment-only override (no config file) would be silently ignored.
func registerKeys(v *viper.Viper) {
	v.SetDefault("profiles.path", DefaultProfilesPath)

	v.SetDefault("space.target_radius", DefaultTargetRadius)
	v.SetDefault("space.similarity_threshold", DefaultSimilarityThreshold)
	v.SetDefault("space.max_neighbors", DefaultMaxNeighbors)
	v.SetDefault("space.large_sample_threshold", DefaultLargeSampleThreshold)
	v.SetDefault("space.max_clusters", DefaultMaxClusters)
	v.SetDefault("space.seed", DefaultSeed)

	v.SetDefault("journey.default_duration", DefaultJourneyDuration)
	v.SetDefault("journey.default_max_steps", DefaultJourneyMaxSteps)
	v.SetDefault("journey.bridge_threshold", DefaultBridgeThreshold)

	v.SetDefault("export.max_connections", DefaultExportMaxConnections)
	v.SetDefault("export.output_path", DefaultExportOutputPath)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// Load reads the YAML file at configPath, merges SONICATLAS_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from SONICATLAS_* environment
// variables, with no config file required.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config, applies defaults,
// and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Intended for
// hot-reloading non-critical settings such as log level; callers are
// responsible for applying only the safe subset of changes at runtime.
//
// Watch is non-blocking; it starts a background goroutine managed by viper.
// If the changed file fails to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; errors are ignored here because callers Load first.
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			// An invalid on-disk config must not push the application into a
			// broken state; keep running with the previous configuration.
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// Intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
