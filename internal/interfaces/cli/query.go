package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/SonicAtlas/internal/application/atlas"
	"github.com/turtacn/SonicAtlas/internal/domain/space"
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// NewPathCmd creates the path command: a track sequence between two tracks.
func NewPathCmd() *cobra.Command {
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "path <start-track> <end-track>",
		Short: "Find an emotional path between two tracks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if _, err := cliCtx.Service.Rebuild(cmd.Context()); err != nil {
				return err
			}

			resp, err := cliCtx.Service.FindPath(cmd.Context(), &atlas.PathRequest{
				Start:    args[0],
				End:      args[1],
				MaxSteps: maxSteps,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "maximum number of tracks in the path (0 = configured default)")
	return cmd
}

// NewNearestCmd creates the nearest command: the k tracks closest to a point
// in raw emotional space.
func NewNearestCmd() *cobra.Command {
	var (
		valence    float64
		energy     float64
		complexity float64
		tension    float64
		k          int
	)

	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Find the tracks nearest to an emotional target",
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 1 {
				return errors.InvalidParam("-k must be at least 1")
			}
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if _, err := cliCtx.Service.Rebuild(cmd.Context()); err != nil {
				return err
			}

			resp, err := cliCtx.Service.Nearest(cmd.Context(), &atlas.NearestRequest{
				Target: space.Coordinate{
					Valence:    valence,
					Energy:     energy,
					Complexity: complexity,
					Tension:    tension,
				},
				K: k,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().Float64Var(&valence, "valence", 0, "target valence")
	cmd.Flags().Float64Var(&energy, "energy", 0, "target energy")
	cmd.Flags().Float64Var(&complexity, "complexity", 0, "target complexity")
	cmd.Flags().Float64Var(&tension, "tension", 0, "target tension")
	cmd.Flags().IntVarP(&k, "count", "k", 5, "number of neighbors to return")
	return cmd
}
