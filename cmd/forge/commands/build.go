package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the build pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			turbo, _ := cmd.Flags().GetBool("turbo")

			only := domain.Phase("")
			if v, _ := cmd.Flags().GetBool("packages-only"); v {
				only = domain.PhasePackages
			}
			if v, _ := cmd.Flags().GetBool("api-only"); v {
				only = domain.PhaseAPI
			}
			if v, _ := cmd.Flags().GetBool("frontend-only"); v {
				only = domain.PhaseFrontend
			}

			return c.components.App.Run(cmd.Context(), app.RunOptions{
				Force: force,
				Turbo: turbo,
				Only:  only,
			})
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Force rebuild, bypassing cache")
	cmd.Flags().BoolP("turbo", "t", false, "Skip the post-build compression phase")
	cmd.Flags().Bool("packages-only", false, "Build only the workspace packages")
	cmd.Flags().Bool("api-only", false, "Build only the API bundle")
	cmd.Flags().Bool("frontend-only", false, "Build only the frontend bundle")
	cmd.MarkFlagsMutuallyExclusive("packages-only", "api-only", "frontend-only")

	return cmd
}
