package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/SonicAtlas/internal/application/atlas"
	"github.com/turtacn/SonicAtlas/internal/domain/space"
	"github.com/turtacn/SonicAtlas/pkg/errors"
)

// NewJourneyCmd creates the journey command: a timed track sequence between
// two tracks, optionally detouring through emotional waypoints.
func NewJourneyCmd() *cobra.Command {
	var (
		duration  float64
		maxSteps  int
		waypoints []string
	)

	cmd := &cobra.Command{
		Use:   "journey <start-track> <end-track>",
		Short: "Synthesize an emotional journey between two tracks",
		Long:  "Synthesize a timed journey from one track to another.  Waypoints are\nemotional coordinates given as valence,energy,complexity,tension; the journey\ndetours through the track nearest to each waypoint in order.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseWaypoints(waypoints)
			if err != nil {
				return err
			}

			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if _, err := cliCtx.Service.Rebuild(cmd.Context()); err != nil {
				return err
			}

			resp, err := cliCtx.Service.SynthesizeJourney(cmd.Context(), &atlas.JourneyRequest{
				Start:     args[0],
				End:       args[1],
				Waypoints: parsed,
				Duration:  duration,
				MaxSteps:  maxSteps,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().Float64Var(&duration, "duration", 0, "journey duration in seconds (0 = configured default)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "maximum number of tracks (0 = configured default)")
	cmd.Flags().StringArrayVar(&waypoints, "waypoint", nil, "emotional waypoint as v,e,c,t (repeatable)")
	return cmd
}

// parseWaypoints converts "v,e,c,t" strings into coordinates.
func parseWaypoints(raw []string) ([]space.Coordinate, error) {
	out := make([]space.Coordinate, 0, len(raw))
	for _, s := range raw {
		parts := strings.Split(s, ",")
		if len(parts) != 4 {
			return nil, errors.InvalidParam("waypoint must have exactly 4 comma-separated values: " + s)
		}
		vals := make([]float64, 4)
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, errors.InvalidParam("waypoint component is not a number: " + p)
			}
			vals[i] = v
		}
		out = append(out, space.Coordinate{
			Valence:    vals[0],
			Energy:     vals[1],
			Complexity: vals[2],
			Tension:    vals[3],
		})
	}
	return out, nil
}
