package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/SonicAtlas/internal/domain/space"
)

// NewStatsCmd creates the stats command: per-dimension statistics and the
// cluster report of the emotional space.
func NewStatsCmd() *cobra.Command {
	var withClusters bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report statistics of the emotional space",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if _, err := cliCtx.Service.Rebuild(cmd.Context()); err != nil {
				return err
			}

			stats, err := cliCtx.Service.Statistics(cmd.Context())
			if err != nil {
				return err
			}

			out := struct {
				Statistics *space.Statistics    `json:"statistics"`
				Clusters   *space.ClusterReport `json:"clusters,omitempty"`
			}{Statistics: stats}

			if withClusters {
				report, err := cliCtx.Service.Clusters(cmd.Context())
				if err != nil {
					return err
				}
				out.Clusters = report
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&withClusters, "clusters", false, "include the k-means cluster report")
	return cmd
}
