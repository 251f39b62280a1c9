package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/SonicAtlas/internal/application/atlas"
)

// NewExportCmd creates the export command: write the visualization bundle.
func NewExportCmd() *cobra.Command {
	var (
		output         string
		maxConnections int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the visualization bundle as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if _, err := cliCtx.Service.Rebuild(cmd.Context()); err != nil {
				return err
			}

			path := output
			if path == "" {
				path = cliCtx.Config.Export.OutputPath
			}
			resp, err := cliCtx.Service.Export(cmd.Context(), &atlas.ExportRequest{
				MaxConnections: maxConnections,
				OutputPath:     path,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d tracks and %d connections to %s\n",
				len(resp.Bundle.Tracks), len(resp.Bundle.Connections), resp.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "bundle destination (default from configuration)")
	cmd.Flags().IntVar(&maxConnections, "max-connections", 0, "cap on exported connections (0 = configured default)")
	return cmd
}
