package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tupcfg/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the generated build files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context(), app.CleanOptions{ProjectOptions: c.project})
		},
	}
}
