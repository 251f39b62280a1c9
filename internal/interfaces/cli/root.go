// Package cli implements the sonicatlas command tree.  Every invocation
// rebuilds the emotional space from the profile file before running its
// operation; the engine holds no state between processes.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/SonicAtlas/internal/application/atlas"
	"github.com/turtacn/SonicAtlas/internal/config"
	"github.com/turtacn/SonicAtlas/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	ProfilesPath string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config  *config.Config
	Logger  logging.Logger
	Service atlas.Service
}

type cliContextKey struct{}

// NewRootCommand creates the root command with all global flags and
// subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "sonicatlas",
		Short:   "SonicAtlas maps music libraries into a navigable emotional space",
		Long:    "SonicAtlas positions tracks in a 3D emotional space from their sonic DNA\nprofiles, connects emotionally similar tracks into a similarity graph, and\nsynthesizes listening journeys through that space.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./sonicatlas.yaml)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVar(&opts.ProfilesPath, "profiles", "", "DNA profile JSON file override")

	cmd.AddCommand(
		NewBuildCmd(),
		NewPathCmd(),
		NewNearestCmd(),
		NewJourneyCmd(),
		NewStatsCmd(),
		NewExportCmd(),
	)
	return cmd
}

// persistentPreRun loads configuration, builds the logger, and wires the
// application service into the command context.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	cliCtx := &CLIContext{
		Config:  cfg,
		Logger:  logger,
		Service: atlas.NewService(cfg, logger, nil),
	}

	ctx := context.WithValue(cmd.Context(), cliContextKey{}, cliCtx)
	cmd.SetContext(ctx)
	return nil
}

// GetCLIContext extracts the CLIContext from a command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, fmt.Errorf("CLI context not initialized")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, fmt.Errorf("CLI context not initialized")
	}
	return cliCtx, nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	switch {
	case opts.ConfigPath != "":
		cfg, err = config.Load(opts.ConfigPath)
	case fileExists("./sonicatlas.yaml"):
		cfg, err = config.Load("./sonicatlas.yaml")
	default:
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if opts.ProfilesPath != "" {
		cfg.Profiles.Path = opts.ProfilesPath
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogger creates a logger configured for CLI usage: console format on
// stderr, so stdout stays clean for command output.
func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	logCfg := logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return logging.NewLogger(logCfg)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
