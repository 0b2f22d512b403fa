package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tupcfg/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Write the build files of the project",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			return c.app.Generate(cmd.Context(), app.GenerateOptions{
				ProjectOptions: c.project,
				Watch:          watch,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever the project description or settings change")
	return cmd
}
