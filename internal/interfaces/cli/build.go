package cli

import (
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command: load profiles, embed, connect, and
// report the resulting space size.
func NewBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the emotional space from the DNA profile file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			result, err := cliCtx.Service.Rebuild(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}
